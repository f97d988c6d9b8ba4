package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"wow-tracker/internal/config"
	"wow-tracker/internal/constants"
	"wow-tracker/internal/domain"
)

const tokenURL = "https://oauth.battle.net/token"

// Client talks to the Blizzard profile API. It obtains a client-credentials
// bearer token on demand and caches it until shortly before expiry.
type Client struct {
	clientID     string
	clientSecret string
	region       string
	locale       string
	namespaces   []string
	client       *fasthttp.Client
	logger       zerolog.Logger

	tokenMu     sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		region:       cfg.Region,
		locale:       cfg.Locale,
		namespaces:   cfg.Namespaces,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// profileResponse is the subset of the character profile payload the
// tracker consumes, parsed into explicit fields at the boundary.
type profileResponse struct {
	Name       string  `json:"name"`
	Level      int     `json:"level"`
	Experience float64 `json:"experience"`
	Realm      struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"realm"`
	CharacterClass struct {
		Name string `json:"name"`
	} `json:"character_class"`
	Race struct {
		Name string `json:"name"`
	} `json:"race"`
}

// FetchResult is the outcome of one character fetch. OK distinguishes a
// usable profile from a terminal failure; Status and Detail describe the
// failure when OK is false.
type FetchResult struct {
	OK      bool
	Status  int
	Profile *domain.CharacterProfile
	Detail  string
}

func (c *Client) bearerToken(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(tokenURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.SetBodyString("grant_type=client_credentials")
	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)

	if err := c.do(ctx, req, resp); err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return "", fmt.Errorf("token request failed: status %d", resp.StatusCode())
	}

	var tok tokenResponse
	if err := json.Unmarshal(resp.Body(), &tok); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}

	c.token = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - constants.TokenExpirySlack)
	c.logger.Debug().Int("expires_in", tok.ExpiresIn).Msg("bearer token refreshed")
	return c.token, nil
}

// FetchProfile resolves one character against the configured namespaces in
// order. 403 and 404 mean "not in this namespace, try the next"; any other
// failure is terminal for the character.
func (c *Client) FetchProfile(ctx context.Context, realm, name string) FetchResult {
	token, err := c.bearerToken(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to obtain bearer token")
		return FetchResult{Status: 0, Detail: err.Error()}
	}

	body, status, err := resolveProfile(c.namespaces, func(namespace string) (int, []byte, error) {
		return c.getProfile(ctx, token, realm, name, namespace)
	})
	if err != nil {
		c.logger.Error().Err(err).Str("realm", realm).Str("name", name).Msg("profile fetch failed")
		return FetchResult{Status: status, Detail: err.Error()}
	}

	var pr profileResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return FetchResult{Status: status, Detail: fmt.Sprintf("failed to parse profile: %v", err)}
	}

	return FetchResult{
		OK:     true,
		Status: status,
		Profile: &domain.CharacterProfile{
			Name:       pr.Name,
			Level:      pr.Level,
			Experience: pr.Experience,
			RealmName:  pr.Realm.Name,
			RealmSlug:  pr.Realm.Slug,
			Class:      pr.CharacterClass.Name,
			Race:       pr.Race.Name,
		},
	}
}

func (c *Client) getProfile(ctx context.Context, token, realm, name, namespace string) (int, []byte, error) {
	// the profile endpoint only answers for lower-cased realm slug and name
	uri := fmt.Sprintf(
		"https://%s.api.blizzard.com/profile/wow/character/%s/%s?namespace=%s&locale=%s",
		c.region,
		url.PathEscape(strings.ToLower(realm)),
		url.PathEscape(strings.ToLower(name)),
		url.QueryEscape(namespace),
		url.QueryEscape(c.locale),
	)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", "Bearer "+token)

	if err := c.do(ctx, req, resp); err != nil {
		return 0, nil, err
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return resp.StatusCode(), body, nil
}

func (c *Client) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if deadline, ok := ctx.Deadline(); ok {
		return c.client.DoDeadline(req, resp, deadline)
	}
	return c.client.Do(req, resp)
}
