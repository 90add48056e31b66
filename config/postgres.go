package config

import (
	"net"
	"net/url"
)

// PostgresNode is one side of the read/write split.
type PostgresNode struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

// DSN renders a postgres:// URL for the node. prefix is prepended to the
// database name and extra carries driver specific query options.
func (n PostgresNode) DSN(prefix string, extra url.Values) string {
	query := url.Values{}
	for key, values := range extra {
		query[key] = values
	}

	if n.SSLMode != "" {
		query.Set("sslmode", n.SSLMode)
	}

	if n.Timezone != "" {
		query.Set("timezone", n.Timezone)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(n.Username, n.Password),
		Host:     net.JoinHostPort(n.Host, n.Port),
		Path:     "/" + prefix + n.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}
