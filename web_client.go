package skimxml

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// WebClient fetches XML documents over HTTP and hands them to the scanner.
type WebClient struct {
	client    *http.Client
	jar       *SessionJar
	userAgent string
	log       zerolog.Logger
}

func NewClient() *WebClient {
	jar := NewSessionJar()

	return &WebClient{
		client:    &http.Client{Jar: jar},
		jar:       jar,
		userAgent: "skimxml/1.0",
		log:       zerolog.Nop(),
	}
}

func (c *WebClient) SetLogger(logger zerolog.Logger) {
	c.log = logger
}

func (c *WebClient) SetUserAgent(agent string) {
	c.userAgent = agent
}

func (c *WebClient) GetHttpClient() *http.Client {
	return c.client
}

func (c *WebClient) LoadCookies(filename string) error {
	return c.jar.Load(filename)
}

func (c *WebClient) PersistCookies(filename string) error {
	return c.jar.Save(filename)
}

// Fetch reads the whole response body into memory; the scanner has no
// streaming mode.
func (c *WebClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)

	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, err
	}

	c.log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("bytes", len(data)).
		Msg("fetched document")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	return data, nil
}

// FetchParse fetches url and runs handler over the response's root
// element. The parser is returned so the caller can keep walking the
// document it now holds.
func (c *WebClient) FetchParse(ctx context.Context, url string, handler OnNode, userData any) (*Parser, error) {
	data, err := c.Fetch(ctx, url)

	if err != nil {
		return nil, err
	}

	p := NewParser(data)

	if err = p.Parse(handler, userData); err != nil {
		return nil, err
	}

	return p, nil
}

// FetchAll fetches every url concurrently and returns the documents in
// input order.
func (c *WebClient) FetchAll(ctx context.Context, urls []string) ([][]byte, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(5)

	docs := make([][]byte, len(urls))

	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			data, err := c.Fetch(ctx, url)

			if err != nil {
				return err
			}

			docs[i] = data

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return docs, nil
}
