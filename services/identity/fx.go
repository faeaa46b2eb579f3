package identity

import (
	"go.uber.org/fx"

	"campaignhub/services/wallet"
)

var Module = fx.Module("identity.module",
	fx.Provide(NewSession),
	fx.Invoke(registerCascade),
)

// registerCascade subscribes the identity session to wallet state changes so
// a disconnect invalidates the identity before anything else observes it.
func registerCascade(w *wallet.Session, s *Session) {
	w.Subscribe(s.handleWalletEvent)
}
