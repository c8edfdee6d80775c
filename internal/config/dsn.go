package config

import (
	"fmt"
	"net/url"
)

// buildDSN assembles a MySQL DSN from individual database fields.
func buildDSN(db DatabaseConfig) string {
	host := db.Host
	if host == "" {
		host = defaultDBHost
	}
	port := db.Port
	if port <= 0 {
		port = defaultDBPort
	}
	user := db.User
	if user == "" {
		user = defaultDBUser
	}
	name := db.Name
	if name == "" {
		name = defaultDBName
	}
	charset := db.Charset
	if charset == "" {
		charset = defaultDBCharset
	}

	cred := user
	if db.Password != "" {
		cred = user + ":" + url.QueryEscape(db.Password)
	}
	return fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		cred, host, port, name, charset)
}
