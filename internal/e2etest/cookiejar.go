package e2etest

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
)

// unsafeCookieJar stores Secure cookies even though the test server speaks
// plain HTTP. The session cookie is marked Secure in production and would
// otherwise be dropped by the standard jar.
type unsafeCookieJar struct {
	jar *cookiejar.Jar
}

func newUnsafeCookieJar() (*unsafeCookieJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("new cookie jar: %w", err)
	}
	return &unsafeCookieJar{jar: jar}, nil
}

func (j *unsafeCookieJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	stripped := make([]*http.Cookie, len(cookies))
	for i, c := range cookies {
		clone := *c
		clone.Secure = false
		stripped[i] = &clone
	}
	j.jar.SetCookies(u, stripped)
}

func (j *unsafeCookieJar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar.Cookies(u)
}
