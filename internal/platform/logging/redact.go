package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

var (
	// bcrypt hash as stored in the credentials file
	bcryptPattern = regexp.MustCompile(`^\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}$`)

	bearerPattern = regexp.MustCompile(`(?i)^bearer\s+.+$`)
	basicPattern  = regexp.MustCompile(`(?i)^basic\s+.+$`)
)

// DefaultRedactOptions returns the masq options applied to every handler.
func DefaultRedactOptions() []masq.Option {
	return []masq.Option{
		masq.WithFieldName("password"),
		masq.WithFieldName("new_password"),
		masq.WithFieldName("hash"),
		masq.WithFieldName("password_hash"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),
		masq.WithFieldName("authorization"),
		masq.WithFieldName("auth"),
		masq.WithFieldName("cookie"),
		masq.WithFieldName("credential"),
		masq.WithFieldName("credentials"),

		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("password"),

		masq.WithRegex(bcryptPattern),
		masq.WithRegex(bearerPattern),
		masq.WithRegex(basicPattern),
	}
}

// NewReplaceAttr returns a slog ReplaceAttr that redacts sensitive
// attributes. Extra options extend DefaultRedactOptions.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(DefaultRedactOptions(), opts...)...)
}
