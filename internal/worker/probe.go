package worker

import (
	"context"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/internal/github"
	"github.com/KOFI-GYIMAH/portfolio/internal/metrics"
	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
)

type IdentityResolver interface {
	ResolveIdentity(ctx context.Context) (*github.Identity, error)
}

// * CredentialProbe periodically checks that the GitHub credential still works.
// * It only feeds the credential gauge and the logs; request handlers never read it.
type CredentialProbe struct {
	resolver IdentityResolver
	interval time.Duration
	valid    *bool
}

func NewCredentialProbe(resolver IdentityResolver, interval time.Duration) *CredentialProbe {
	return &CredentialProbe{
		resolver: resolver,
		interval: interval,
	}
}

func (p *CredentialProbe) Run(ctx context.Context) {
	if p.interval <= 0 {
		logger.Info("credential probe disabled")
		return
	}

	p.check(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.check(ctx)

		case <-ctx.Done():
			logger.Info("stopping credential probe")
			return
		}
	}
}

// * check reports whether the credential is usable. Upstream trouble (rate limits,
// * timeouts, 5xx) says nothing about the credential, so the last known state is kept.
func (p *CredentialProbe) check(ctx context.Context) bool {
	identity, err := p.resolver.ResolveIdentity(ctx)
	if errors.IsKind(err, errors.KindUpstream) {
		logger.Warn("GitHub credential check inconclusive: %v", err)
		return p.valid != nil && *p.valid
	}

	valid := err == nil
	metrics.SetCredentialValid(valid)

	switch {
	case p.valid != nil && *p.valid == valid:
		logger.Debug("credential probe unchanged (valid=%t)", valid)
	case valid:
		logger.Info("GitHub credential valid for %s", identity.Username)
	default:
		logger.Warn("GitHub credential check failed: %v", err)
	}

	p.valid = &valid
	return valid
}
