package notify

import (
	"fmt"
	"os"

	"github.com/opswatch/opswatch/internal/database"
	"gopkg.in/yaml.v3"
)

// RoutingPolicy maps alert severity to an ordered list of channels.
// Severity is matched case-sensitively against the configured buckets;
// anything without a bucket falls through to the default route.
type RoutingPolicy struct {
	Routes  map[string][]database.NotificationChannel `yaml:"routes"`
	Default []database.NotificationChannel            `yaml:"default"`
}

// DefaultPolicy returns the built-in severity routing:
//
//	down, critical → chatwork, email, sms
//	major          → chatwork, email
//	anything else  → chatwork
func DefaultPolicy() RoutingPolicy {
	return RoutingPolicy{
		Routes: map[string][]database.NotificationChannel{
			"down":     {database.ChannelChatwork, database.ChannelEmail, database.ChannelSMS},
			"critical": {database.ChannelChatwork, database.ChannelEmail, database.ChannelSMS},
			"major":    {database.ChannelChatwork, database.ChannelEmail},
		},
		Default: []database.NotificationChannel{database.ChannelChatwork},
	}
}

// ChannelsFor returns the ordered channel list for a severity
func (p RoutingPolicy) ChannelsFor(severity database.Severity) []database.NotificationChannel {
	if channels, ok := p.Routes[string(severity)]; ok {
		return channels
	}
	return p.Default
}

// LoadPolicy reads a routing policy from a YAML file. A routes section
// replaces the built-in map wholesale, so severities it leaves out route
// to the policy default rather than their built-in channels.
func LoadPolicy(path string) (RoutingPolicy, error) {
	policy := DefaultPolicy()

	data, err := os.ReadFile(path)
	if err != nil {
		return policy, fmt.Errorf("failed to read routing policy: %w", err)
	}

	var loaded RoutingPolicy
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return policy, fmt.Errorf("failed to parse routing policy: %w", err)
	}

	if len(loaded.Routes) > 0 {
		policy.Routes = loaded.Routes
	}
	if len(loaded.Default) > 0 {
		policy.Default = loaded.Default
	}

	if err := policy.validate(); err != nil {
		return DefaultPolicy(), err
	}
	return policy, nil
}

func (p RoutingPolicy) validate() error {
	check := func(channels []database.NotificationChannel) error {
		for _, c := range channels {
			switch c {
			case database.ChannelChatwork, database.ChannelEmail, database.ChannelSMS:
			default:
				return fmt.Errorf("unknown notification channel %q in routing policy", c)
			}
		}
		return nil
	}
	for _, channels := range p.Routes {
		if err := check(channels); err != nil {
			return err
		}
	}
	return check(p.Default)
}
