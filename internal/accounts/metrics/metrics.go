package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the accounts module.
type Metrics struct {
	UsersRegistered prometheus.Counter
	LoginFailures   prometheus.Counter
	TokensRevoked   prometheus.Counter
}

// New creates a new Metrics instance with all accounts module metrics registered.
func New() *Metrics {
	return &Metrics{
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sangamsetu_users_registered_total",
			Help: "Total number of users registered",
		}),
		LoginFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sangamsetu_login_failures_total",
			Help: "Total number of failed login attempts",
		}),
		TokensRevoked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sangamsetu_tokens_revoked_total",
			Help: "Total number of access tokens revoked via logout",
		}),
	}
}

// IncrementUsersRegistered records a successful registration.
func (m *Metrics) IncrementUsersRegistered() {
	if m != nil {
		m.UsersRegistered.Inc()
	}
}

// IncrementLoginFailures records a rejected login attempt.
func (m *Metrics) IncrementLoginFailures() {
	if m != nil {
		m.LoginFailures.Inc()
	}
}

// IncrementTokensRevoked records a logout revocation.
func (m *Metrics) IncrementTokensRevoked() {
	if m != nil {
		m.TokensRevoked.Inc()
	}
}
