package wallet

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("wallet.module",
	fx.Provide(
		NewProvider,
		NewSession,
	),
	fx.Invoke(
		restoreOnStart,
		watchAccounts,
	),
)

// restoreOnStart performs the passive reconnection: already-authorized
// accounts are reinstated without prompting or notifying.
func restoreOnStart(lc fx.Lifecycle, session *Session) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			session.Restore(ctx)
			return nil
		},
	})
}

type watchParams struct {
	fx.In

	Provider Provider `optional:"true"`
	Session  *Session
}

// watchAccounts subscribes the session to the capability's accounts-changed
// feed for the lifetime of the app.
func watchAccounts(lc fx.Lifecycle, p watchParams) {
	watcher, ok := p.Provider.(AccountWatcher)
	if !ok {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go p.Session.Watch(ctx, watcher)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
