package resilience

import "time"

type BreakerConfig struct {
	Enabled   bool
	Threshold int
	Cooldown  time.Duration
	Probes    int
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:   true,
		Threshold: 5,
		Cooldown:  15 * time.Second,
		Probes:    2,
	}
}

func (c BreakerConfig) normalized() BreakerConfig {
	defaults := DefaultBreakerConfig()
	if c.Threshold < 1 {
		c.Threshold = defaults.Threshold
	}
	if c.Cooldown <= 0 {
		c.Cooldown = defaults.Cooldown
	}
	if c.Probes < 1 {
		c.Probes = defaults.Probes
	}
	return c
}
