package api

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithRateLimit overrides the per-channel command rate limits.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps > 0 && burst > 0 {
			s.commandsHandler.limiters = newChannelLimiters(rps, burst)
		}
	}
}
