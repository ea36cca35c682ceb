package pdfscan

import "log/slog"

// Option configures a [Scanner].
type Option func(*Scanner)

// WithLogger sets the structured logger the Scanner reports its progress
// to. Defaults to [slog.Default].
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}
