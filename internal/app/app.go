package app

import "didwallet/internal/domain"

// App is the state shared by one CLI invocation.
type App struct {
	Config Config
	*Wire
}

// New wires an App from cfg.
func New(cfg Config) (*App, error) {
	w, err := NewWire(cfg)
	if err != nil {
		return nil, err
	}
	return &App{Config: cfg, Wire: w}, nil
}

// Self loads the wallet identity with the configured passphrase.
func (a *App) Self() (domain.Identity, error) {
	return a.Identity.LoadIdentity(a.Config.Passphrase)
}
