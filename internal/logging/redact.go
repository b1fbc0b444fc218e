package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// panPattern matches bare card numbers (13-19 digits) so a PAN logged as a
// plain value is still masked.
var panPattern = regexp.MustCompile(`^\d{13,19}$`)

// DefaultRedactOptions returns the masq options applied to every SDK logger.
// They cover the API access token and raw card data, whether they appear as
// struct fields, map keys, or bare values.
func DefaultRedactOptions() []masq.Option {
	return []masq.Option{
		masq.WithFieldName("apiKey"),
		masq.WithFieldName("api_key"),
		masq.WithFieldName("access-token"),
		masq.WithFieldName("accessToken"),
		masq.WithFieldName("access_token"),
		masq.WithFieldName("token"),
		masq.WithFieldName("number"),
		masq.WithFieldName("cvv"),
		masq.WithFieldName("card"),
		masq.WithFieldPrefix("secret"),
		masq.WithRegex(panPattern),
	}
}

// NewReplaceAttr creates a ReplaceAttr function for slog.HandlerOptions
// that redacts sensitive data.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	allOpts := append(DefaultRedactOptions(), opts...)
	return masq.New(allOpts...)
}
