// Package explain turns scored bets into human-readable explanations.
//
// Providers form a closed set selected by tag. The local provider is
// deterministic and has no network dependency, so it is always available as
// a fallback for the remote one.
package explain

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/clever-edge/internal/config"
	"github.com/yourusername/clever-edge/internal/models"
)

// Tag names a provider variant.
type Tag string

const (
	// TagLocal selects the deterministic template provider
	TagLocal Tag = "local"
	// TagHTTP selects the remote explanation service
	TagHTTP Tag = "http"
)

// Tags lists every supported provider tag.
func Tags() []Tag {
	return []Tag{TagLocal, TagHTTP}
}

// Provider explains a scored bet.
type Provider interface {
	Explain(ctx context.Context, bet *models.ScoredBet) (string, error)
	Name() string
}

// NewProvider builds the provider named by cfg.Provider. Remote providers
// are wrapped so that failures fall back to the local provider.
func NewProvider(cfg config.ExplainConfig, logger *logrus.Logger) (Provider, error) {
	switch Tag(strings.ToLower(cfg.Provider)) {
	case TagLocal, "":
		return NewLocalProvider(), nil
	case TagHTTP:
		remote, err := NewHTTPProvider(HTTPProviderConfigFrom(cfg), logger)
		if err != nil {
			return nil, err
		}
		return NewFallbackProvider(remote, logger), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}

// FallbackProvider delegates to a primary provider and answers with the
// local provider when the primary fails.
type FallbackProvider struct {
	primary Provider
	local   *LocalProvider
	logger  *logrus.Logger
}

// NewFallbackProvider wraps primary with the local fallback.
func NewFallbackProvider(primary Provider, logger *logrus.Logger) *FallbackProvider {
	if logger == nil {
		logger = logrus.New()
	}
	return &FallbackProvider{
		primary: primary,
		local:   NewLocalProvider(),
		logger:  logger,
	}
}

// Name reports the primary provider's name.
func (p *FallbackProvider) Name() string {
	return p.primary.Name()
}

// Explain implements Provider.
func (p *FallbackProvider) Explain(ctx context.Context, bet *models.ScoredBet) (string, error) {
	if bet == nil {
		return "", ErrNilBet
	}
	text, err := p.primary.Explain(ctx, bet)
	if err == nil {
		return text, nil
	}

	p.logger.WithFields(logrus.Fields{
		"provider": p.primary.Name(),
		"game_id":  bet.GameID,
		"error":    err,
	}).Warn("Explanation provider failed, using local fallback")

	return p.local.Explain(ctx, bet)
}
