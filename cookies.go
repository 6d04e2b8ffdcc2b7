package skimxml

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"sync"
)

// SessionJar is a cookie jar that can persist its cookies between runs,
// for APIs that hand out session cookies on first contact. The http.Client
// calls SetCookies from whichever goroutine ran the request, so the
// persisted map is mutex-guarded; the embedded cookiejar.Jar locks itself.
type SessionJar struct {
	jar     *cookiejar.Jar
	mu      sync.Mutex
	cookies map[string][]*http.Cookie
}

func NewSessionJar() *SessionJar {
	// cookiejar.New cannot fail with nil options
	jar, _ := cookiejar.New(nil)

	return &SessionJar{jar: jar, cookies: make(map[string][]*http.Cookie)}
}

func (j *SessionJar) Save(filename string) error {
	j.mu.Lock()
	data, err := json.Marshal(j.cookies)
	j.mu.Unlock()

	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0600)
}

func (j *SessionJar) Load(filename string) error {
	data, err := os.ReadFile(filename)

	if err != nil {
		return err
	}

	var all map[string][]*http.Cookie

	if err = json.Unmarshal(data, &all); err != nil {
		return err
	}

	for urlString, cookies := range all {
		u, err := url.Parse(urlString)

		if err != nil {
			return err
		}

		j.SetCookies(u, cookies)
	}

	return nil
}

func (j *SessionJar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar.Cookies(u)
}

func (j *SessionJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	j.cookies[u.String()] = cookies
	j.mu.Unlock()

	j.jar.SetCookies(u, cookies)
}
