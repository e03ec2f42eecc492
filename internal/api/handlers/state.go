package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rohits-web03/dealls/internal/utils"
)

const (
	flowLogin    = "login"
	flowRegister = "register"
)

type oauthState struct {
	Flow string `json:"flow"`
}

// encodeState builds "<nonce>.<payload>", where the payload carries the
// sign-in flow through Google's redirect.
func encodeState(flow string) (string, error) {
	nonce, err := utils.GenerateSecureToken(16)
	if err != nil {
		return "", fmt.Errorf("generate state nonce: %w", err)
	}
	payload, err := json.Marshal(oauthState{Flow: flow})
	if err != nil {
		return "", fmt.Errorf("marshal state: %w", err)
	}
	return nonce + "." + base64.RawURLEncoding.EncodeToString(payload), nil
}

func decodeState(state string) (oauthState, error) {
	nonce, payload, ok := strings.Cut(state, ".")
	if !ok || nonce == "" || strings.Contains(payload, ".") {
		return oauthState{}, errors.New("invalid state format")
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return oauthState{}, fmt.Errorf("decode state payload: %w", err)
	}
	var s oauthState
	if err := json.Unmarshal(raw, &s); err != nil {
		return oauthState{}, fmt.Errorf("unmarshal state: %w", err)
	}
	if s.Flow != flowLogin && s.Flow != flowRegister {
		return oauthState{}, fmt.Errorf("unknown flow %q", s.Flow)
	}
	return s, nil
}
