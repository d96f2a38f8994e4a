package providers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dshills/critic/internal/logging"
)

// probePrompt is the one-word liveness check sent to each candidate backend.
const probePrompt = "Test"

// Resolved is an immutable committed backend binding.
type Resolved struct {
	Provider   string
	Model      string
	Client     Client
	ResolvedAt time.Time
	Fallback   bool
	// AuthFailure is set on a fallback binding when at least one available
	// provider rejected its credential during resolution, so callers can
	// distinguish "no credentials configured" from "credentials rejected".
	AuthFailure bool
}

// Info describes the committed backend for status surfaces.
type Info struct {
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	Available    bool   `json:"available"`
	FallbackMode bool   `json:"fallback_mode"`
}

// Info returns the binding's status view.
func (r *Resolved) Info() Info {
	return Info{
		Provider:     r.Provider,
		Model:        r.Model,
		Available:    true,
		FallbackMode: r.Fallback,
	}
}

// Resolver walks an ordered descriptor chain and commits to the first
// backend that answers a probe.
type Resolver struct {
	descriptors []Descriptor
	opts        Options
	quota       func(error) bool
	log         *logrus.Entry
}

// NewResolver creates a resolver over the default descriptor chain.
func NewResolver(opts Options) *Resolver {
	return NewResolverWith(DefaultDescriptors(), opts)
}

// NewResolverWith creates a resolver over an explicit descriptor chain.
func NewResolverWith(descriptors []Descriptor, opts Options) *Resolver {
	return &Resolver{
		descriptors: descriptors,
		opts:        opts,
		quota:       IsQuotaError,
		log:         logging.WithComponent("resolver"),
	}
}

// Resolve walks the chain in order. Providers with no credential are skipped
// without any network traffic. For each available provider the model variants
// are probed in order; the first non-empty probe reply commits the binding.
// A quota-classified probe error abandons that provider's remaining variants.
// Resolve never fails: when no remote backend commits, the deterministic
// fallback is returned.
func (r *Resolver) Resolve(ctx context.Context) *Resolved {
	authSeen := false
	for _, desc := range r.descriptors {
		if !desc.Available() {
			r.log.WithField("provider", desc.Name).Debug("skipping provider, credential not set")
			continue
		}
		resolved, authFailed := r.tryProvider(ctx, desc)
		if authFailed {
			authSeen = true
		}
		if resolved != nil {
			if resolved.Fallback {
				resolved.AuthFailure = authSeen
			}
			r.log.WithFields(logrus.Fields{
				"provider": resolved.Provider,
				"model":    resolved.Model,
				"fallback": resolved.Fallback,
			}).Info("committed backend")
			return resolved
		}
	}

	// Unreachable with the default chain, which ends in the credential-free
	// static descriptor, but a custom chain may omit it.
	r.log.Warn("no backend committed, using static fallback")
	return &Resolved{
		Provider:    "static",
		Model:       "static",
		Client:      &Static{},
		ResolvedAt:  time.Now(),
		Fallback:    true,
		AuthFailure: authSeen,
	}
}

func (r *Resolver) tryProvider(ctx context.Context, desc Descriptor) (*Resolved, bool) {
	authFailed := false
	for _, model := range desc.Models {
		client, err := desc.Build(ctx, model, r.opts)
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"provider": desc.Name,
				"model":    model,
			}).WithError(err).Debug("building client failed")
			continue
		}

		reply, err := client.Invoke(ctx, probePrompt)
		if err != nil {
			if r.quota(err) {
				r.log.WithFields(logrus.Fields{
					"provider": desc.Name,
					"model":    model,
				}).WithError(err).Warn("quota exhausted, abandoning provider")
				return nil, authFailed
			}
			if IsAuthError(err) {
				authFailed = true
			}
			r.log.WithFields(logrus.Fields{
				"provider": desc.Name,
				"model":    model,
			}).WithError(err).Debug("probe failed")
			continue
		}
		if reply.IsEmpty() {
			r.log.WithFields(logrus.Fields{
				"provider": desc.Name,
				"model":    model,
			}).Debug("probe returned empty reply")
			continue
		}

		return &Resolved{
			Provider:   desc.Name,
			Model:      model,
			Client:     client,
			ResolvedAt: time.Now(),
			Fallback:   desc.Name == "static",
		}, authFailed
	}
	return nil, authFailed
}
