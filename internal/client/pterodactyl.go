package client

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	mrand "math/rand"
	"net/http"
	"strings"
	"time"

	"novapanel/internal/config"
	"novapanel/internal/model"
)

type PterodactylClient interface {
	CreateUser(ctx context.Context, displayName string) (*PanelUser, error)
	CreateServer(ctx context.Context, userID int, tier model.PlanTier, displayName string) (*PanelServer, error)
}

type PanelUser struct {
	ID       int
	Username string
	Password string
	Email    string
}

type PanelServer struct {
	ID         int
	Identifier string
	Name       string
	PanelURL   string
	RAMMB      int
	DiskMB     int
	CPUPercent int
}

type pterodactylClientImpl struct {
	httpClient  *http.Client
	baseApiURL  string
	appToken    string
	panelURL    string
	eggID       int
	locationID  int
	dockerImage string
	startupCmd  string
	emailDomain string
}

func NewPterodactylClient(cfg *config.Pterodactyl) PterodactylClient {
	return &pterodactylClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:  cfg.BaseApiURL,
		appToken:    cfg.AppToken,
		panelURL:    cfg.PanelURL,
		eggID:       cfg.EggID,
		locationID:  cfg.LocationID,
		dockerImage: cfg.DockerImage,
		startupCmd:  cfg.StartupCmd,
		emailDomain: cfg.EmailDomain,
	}
}

func (c *pterodactylClientImpl) CreateUser(ctx context.Context, displayName string) (*PanelUser, error) {
	username := sanitizeUsername(displayName)
	password := randomPassword(12)
	email := username + "@" + c.emailDomain

	user, err := c.postUser(ctx, model.PteroCreateUserRequest{
		Email:     email,
		Username:  username,
		FirstName: displayName,
		LastName:  "Panel",
		Language:  "en",
		Password:  password,
	})
	if err == nil {
		return &PanelUser{ID: user.ID, Username: username, Password: password, Email: email}, nil
	}

	if !isUsernameTaken(err) {
		return nil, err
	}

	// One retry with a numeric suffix on username and email local part.
	suffix := fmt.Sprintf("%d", mrand.Intn(1000))
	username += suffix
	email = username + "@" + c.emailDomain

	user, err = c.postUser(ctx, model.PteroCreateUserRequest{
		Email:     email,
		Username:  username,
		FirstName: displayName,
		LastName:  "Panel",
		Language:  "en",
		Password:  password,
	})
	if err != nil {
		return nil, err
	}

	return &PanelUser{ID: user.ID, Username: username, Password: password, Email: email}, nil
}

func (c *pterodactylClientImpl) postUser(ctx context.Context, reqBody model.PteroCreateUserRequest) (*model.PteroUserAttributes, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/api/application/users",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	var result model.PteroUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode panel response: %w", err)
	}

	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("panel create user: %s", result.Errors[0].Detail)
	}

	return &result.Attributes, nil
}

func (c *pterodactylClientImpl) CreateServer(ctx context.Context, userID int, tier model.PlanTier, displayName string) (*PanelServer, error) {
	spec, ok := model.SpecForTier(tier)
	if !ok {
		return nil, fmt.Errorf("unknown plan tier %q", tier)
	}

	serverName := fmt.Sprintf("%s %s Server", capitalize(displayName), tier.Label())

	reqBody := model.PteroCreateServerRequest{
		Name:        serverName,
		Description: "Auto-provisioned panel",
		User:        userID,
		Egg:         c.eggID,
		DockerImage: c.dockerImage,
		Startup:     c.startupCmd,
		Environment: map[string]string{
			"INST":        "npm",
			"USER_UPLOAD": "0",
			"AUTO_UPDATE": "0",
			"CMD_RUN":     "npm start",
		},
		Limits: model.PteroLimits{
			Memory: spec.RAMMB,
			Swap:   0,
			Disk:   spec.DiskMB,
			IO:     500,
			CPU:    spec.CPUPercent,
		},
		FeatureLimits: model.PteroFeatureLimits{
			Databases:   5,
			Backups:     5,
			Allocations: 1,
		},
		Deploy: model.PteroDeploy{
			Locations:   []int{c.locationID},
			DedicatedIP: false,
			PortRange:   []string{},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/api/application/servers",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	var result model.PteroServerResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode panel response: %w", err)
	}

	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("panel create server: %s", result.Errors[0].Detail)
	}

	return &PanelServer{
		ID:         result.Attributes.ID,
		Identifier: result.Attributes.Identifier,
		Name:       serverName,
		PanelURL:   fmt.Sprintf("%s/server/%s", c.panelURL, result.Attributes.Identifier),
		RAMMB:      spec.RAMMB,
		DiskMB:     spec.DiskMB,
		CPUPercent: spec.CPUPercent,
	}, nil
}

func (c *pterodactylClientImpl) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.appToken)
}

func isUsernameTaken(err error) bool {
	return err != nil && strings.Contains(err.Error(), "already been taken")
}

// sanitizeUsername derives a panel username from a display name: alphanumerics
// only, lowercase, padded with random digits below 3 chars, cut at 20.
func sanitizeUsername(displayName string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(displayName) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	username := b.String()
	if len(username) < 3 {
		username += fmt.Sprintf("%03d", mrand.Intn(1000))
	}
	if len(username) > 20 {
		username = username[:20]
	}
	return username
}

const passwordChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func randomPassword(length int) string {
	b := make([]byte, length)
	max := big.NewInt(int64(len(passwordChars)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			n = big.NewInt(int64(mrand.Intn(len(passwordChars))))
		}
		b[i] = passwordChars[n.Int64()]
	}
	return string(b)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
