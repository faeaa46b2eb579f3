package sequence

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var Module = fx.Module("sequence",
	fx.Provide(NewGenerator),
)

// Generator produces the human-readable codes attached to domain records.
type Generator interface {
	NextCampaignCode(ctx context.Context) (string, error)
	NextSubmissionCode(ctx context.Context) (string, error)
	NextRedemptionCode(ctx context.Context) (string, error)
}

type Params struct {
	fx.In

	Redis *redis.Client `optional:"true"`
}

// NewGenerator prefers a Redis-backed daily sequence when a client is
// available and falls back to in-process counters otherwise.
func NewGenerator(p Params) Generator {
	if p.Redis != nil {
		return &RedisGenerator{rdb: p.Redis}
	}
	return &MemoryGenerator{seqs: make(map[string]int64)}
}

type RedisGenerator struct {
	rdb *redis.Client
}

func (g *RedisGenerator) NextCampaignCode(ctx context.Context) (string, error) {
	return g.nextDailyCode(ctx, "CMP")
}

func (g *RedisGenerator) NextSubmissionCode(ctx context.Context) (string, error) {
	return g.nextDailyCode(ctx, "SUB")
}

func (g *RedisGenerator) NextRedemptionCode(ctx context.Context) (string, error) {
	return g.nextDailyCode(ctx, "RDM")
}

func (g *RedisGenerator) nextDailyCode(ctx context.Context, prefix string) (string, error) {
	today := time.Now().UTC().Format("060102")
	key := fmt.Sprintf("seq:%s:%s", prefix, today)

	seq, err := g.rdb.Incr(ctx, key).Result()
	if err != nil {
		return "", err
	}

	if seq == 1 {
		expire := time.Until(time.Now().Truncate(24 * time.Hour).Add(24*time.Hour - time.Second))
		_ = g.rdb.Expire(ctx, key, expire).Err()
	}

	return formatCode(prefix, today, seq)
}

// MemoryGenerator keeps per-prefix counters in process memory. Codes are
// unique within a single run, which matches the lifetime of the default
// in-memory store.
type MemoryGenerator struct {
	mu   sync.Mutex
	seqs map[string]int64
}

func (g *MemoryGenerator) NextCampaignCode(ctx context.Context) (string, error) {
	return g.next("CMP")
}

func (g *MemoryGenerator) NextSubmissionCode(ctx context.Context) (string, error) {
	return g.next("SUB")
}

func (g *MemoryGenerator) NextRedemptionCode(ctx context.Context) (string, error) {
	return g.next("RDM")
}

func (g *MemoryGenerator) next(prefix string) (string, error) {
	g.mu.Lock()
	g.seqs[prefix]++
	seq := g.seqs[prefix]
	g.mu.Unlock()

	today := time.Now().UTC().Format("060102")
	return formatCode(prefix, today, seq)
}

func formatCode(prefix, datePart string, seq int64) (string, error) {
	encodedSeq := strings.ToUpper(fmt.Sprintf("%03s", strconv.FormatInt(seq, 36)))

	randSuffix, err := randomAlphaNumeric(2)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%s-%s%s", prefix, datePart, encodedSeq, randSuffix), nil
}

func randomAlphaNumeric(n int) (string, error) {
	const chars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	b := make([]byte, n)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		if err != nil {
			return "", err
		}
		b[i] = chars[num.Int64()]
	}
	return string(b), nil
}
