package client

import (
	"context"
	"fmt"
)

// Theme values accepted by the API.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ThemeClient accesses the shared theme endpoint.
type ThemeClient struct {
	client *Client
}

type themePayload struct {
	Theme string `json:"theme"`
}

// Current fetches the active theme value.
func (tc *ThemeClient) Current(ctx context.Context) (string, error) {
	var resp themePayload
	if err := tc.client.get(ctx, "/api/theme", &resp); err != nil {
		return "", err
	}
	return resp.Theme, nil
}

// Set switches the active theme.  The server rejects values other than
// "dark" and "light".
func (tc *ThemeClient) Set(ctx context.Context, theme string) error {
	if theme != ThemeDark && theme != ThemeLight {
		return fmt.Errorf("theme must be %q or %q", ThemeDark, ThemeLight)
	}
	return tc.client.put(ctx, "/api/theme", themePayload{Theme: theme}, nil)
}
