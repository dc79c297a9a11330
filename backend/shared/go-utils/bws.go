package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	sdk "github.com/bitwarden/sdk-go"
)

const (
	bwsLoginAttempts  = 5
	bwsInitialBackoff = 500 * time.Millisecond
)

// BWSSecretsClient reads secrets for the organisation in
// BWS_ORGANIZATION_ID using the machine account in BWS_ACCESS_TOKEN.
type BWSSecretsClient struct {
	bw    sdk.BitwardenClientInterface
	orgID string
}

// NewBWSSecretsClient logs in, retrying with exponential backoff while
// Bitwarden answers 429.
func NewBWSSecretsClient() (*BWSSecretsClient, error) {
	accessToken := strings.TrimSpace(os.Getenv("BWS_ACCESS_TOKEN"))
	orgID := strings.TrimSpace(os.Getenv("BWS_ORGANIZATION_ID"))
	if accessToken == "" || orgID == "" {
		return nil, errors.New("BWS_ACCESS_TOKEN and BWS_ORGANIZATION_ID must both be set")
	}

	bw, err := sdk.NewBitwardenClient(nil, nil)
	if err != nil {
		return nil, fmt.Errorf("initialising Bitwarden SDK client: %w", err)
	}

	backoff := bwsInitialBackoff
	for attempt := 1; ; attempt++ {
		err = bw.AccessTokenLogin(accessToken, nil)
		if err == nil {
			return &BWSSecretsClient{bw: bw, orgID: orgID}, nil
		}
		if !isRateLimited(err) || attempt == bwsLoginAttempts {
			bw.Close()
			return nil, fmt.Errorf("bitwarden login failed after %d attempt(s): %w", attempt, err)
		}
		Logger.WithError(err).Warnf("Bitwarden login rate limited; retrying in %s", backoff)
		time.Sleep(backoff)
		backoff *= 2
	}
}

// sdk-go does not expose a typed status code.
func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "Too Many Requests")
}

func (c *BWSSecretsClient) Close() {
	if c != nil && c.bw != nil {
		c.bw.Close()
	}
}

// LoadProjects returns the secrets of every named project merged into one
// map. Projects are applied in order, so a key in a later project
// overrides the same key in an earlier one. Every project must exist.
func (c *BWSSecretsClient) LoadProjects(names ...string) (map[string]string, error) {
	projects, err := c.bw.Projects().List(c.orgID)
	if err != nil {
		return nil, fmt.Errorf("listing Bitwarden projects: %w", err)
	}
	ids := make(map[string]string, len(projects.Data))
	for _, p := range projects.Data {
		ids[strings.ToLower(p.Name)] = p.ID
	}

	synced, err := c.bw.Secrets().Sync(c.orgID, nil)
	if err != nil {
		return nil, fmt.Errorf("syncing Bitwarden secrets: %w", err)
	}
	secrets := make([]bwsSecret, 0, len(synced.Secrets))
	for _, s := range synced.Secrets {
		if s.ProjectID != nil {
			secrets = append(secrets, bwsSecret{projectID: *s.ProjectID, key: s.Key, value: s.Value})
		}
	}
	return mergeProjectSecrets(ids, secrets, names)
}

type bwsSecret struct {
	projectID, key, value string
}

// mergeProjectSecrets layers the secrets of names (looked up
// case-insensitively in ids) in order.
func mergeProjectSecrets(ids map[string]string, secrets []bwsSecret, names []string) (map[string]string, error) {
	merged := map[string]string{}
	for _, name := range names {
		id, ok := ids[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("bitwarden project %q not found", name)
		}
		for _, s := range secrets {
			if s.projectID == id {
				merged[s.key] = s.value
			}
		}
	}
	return merged, nil
}
