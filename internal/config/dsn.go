package config

import (
	"net"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// DSNValue returns the MySQL DSN, building it from the discrete fields when
// no explicit dsn is set.
func (c MySQLConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}

	m := mysql.NewConfig()
	m.User = c.User
	m.Passwd = c.Password
	m.Net = "tcp"
	m.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	m.DBName = c.Name
	m.ParseTime = c.ParseTime == nil || *c.ParseTime

	loc := strings.TrimSpace(c.Loc)
	if loc == "" {
		loc = "Local"
	}
	if l, err := time.LoadLocation(loc); err == nil {
		m.Loc = l
	}

	m.Params = map[string]string{}
	if cs := strings.TrimSpace(c.Charset); cs != "" {
		m.Params["charset"] = cs
	}
	for k, v := range c.Params {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k != "" && v != "" {
			m.Params[k] = v
		}
	}
	return m.FormatDSN()
}

// URLValue returns a redis:// URL for the configured server.
func (r RedisConfig) URLValue() string {
	if u := strings.TrimSpace(r.URL); u != "" {
		if !strings.HasPrefix(u, "redis://") && !strings.HasPrefix(u, "rediss://") {
			u = "redis://" + u
		}
		return u
	}

	scheme := "redis"
	if r.TLS {
		scheme = "rediss"
	}
	u := &neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(r.Host, strconv.Itoa(r.Port)),
		Path:   "/" + strconv.Itoa(r.DB),
	}
	if r.Username != "" || r.Password != "" {
		if r.Password != "" {
			u.User = neturl.UserPassword(r.Username, r.Password)
		} else {
			u.User = neturl.User(r.Username)
		}
	}
	return u.String()
}
