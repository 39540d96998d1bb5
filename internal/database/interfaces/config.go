// Copyright (c) 2024 Telar Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package interfaces

// PostgreSQLConfig represents PostgreSQL specific configuration.
// DSN, when set, takes precedence over the individual connection fields.
type PostgreSQLConfig struct {
	DSN                string
	Host               string
	Port               int
	Username           string
	Password           string
	Database           string
	SSLMode            string
	ConnectTimeout     int
	MaxOpenConnections int
	MaxIdleConnections int
	MaxLifetime        int
}
