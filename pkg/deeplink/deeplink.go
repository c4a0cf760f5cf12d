// Package deeplink builds Telegram mini-app links that open a bill: https://t.me/<bot>[/<app>]?startapp=<param>.
package deeplink

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const DefaultBot = "CryptoSplitBot"

var ErrNoStartParam = errors.New("link has no startapp parameter")

// StartParams is what the mini-app reads on launch.
type StartParams struct {
	ID  string `json:"id"`
	Tab string `json:"tab,omitempty"`
}

// EncodeStartParam is unpadded base64url of the JSON payload.
func EncodeStartParam(payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

func DecodeStartParam(param string, out any) error {
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(param, "="))
	if err != nil {
		return fmt.Errorf("start param: %w", err)
	}
	return json.Unmarshal(data, out)
}

func Build(bot, app string, payload any) (string, error) {
	if bot == "" {
		bot = DefaultBot
	}
	p, err := EncodeStartParam(payload)
	if err != nil {
		return "", err
	}
	if app != "" {
		return fmt.Sprintf("https://t.me/%s/%s?startapp=%s", bot, app, p), nil
	}
	return fmt.Sprintf("https://t.me/%s?startapp=%s", bot, p), nil
}

// Parse extracts the start params from a link built by Build.
func Parse(link string) (StartParams, error) {
	var sp StartParams
	u, err := url.Parse(link)
	if err != nil {
		return sp, err
	}
	param := u.Query().Get("startapp")
	if param == "" {
		return sp, ErrNoStartParam
	}
	err = DecodeStartParam(param, &sp)
	return sp, err
}
