package gds

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/base"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
)

// tokenPath is the client-credentials endpoint relative to the base URL.
const tokenPath = "/v1/security/oauth2/token"

// accessToken returns the cached bearer token or fetches a new one.
// Concurrent misses share one token request.
func (a *Adapter) accessToken(ctx context.Context) (string, error) {
	if token, found, err := a.tokens.Get(ctx, a.Code()); err != nil {
		a.Log.Warn().Err(err).Msg("Token cache read failed")
	} else if found {
		return token, nil
	}

	v, err, shared := a.flight.Do("token", func() (any, error) {
		return a.fetchToken(ctx)
	})
	if err != nil {
		return "", err
	}
	if shared {
		a.Log.Debug().Msg("Shared in-flight token request")
	}
	return v.(string), nil
}

// fetchToken performs the form-encoded client-credentials grant and caches the result.
func (a *Adapter) fetchToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", a.Settings.ClientID)
	form.Set("client_secret", a.Settings.ClientSecret)

	var tr tokenResponse
	_, err := a.DoJSON(ctx, base.Request{
		Op:          "auth",
		Method:      http.MethodPost,
		Path:        a.authURL(),
		Body:        []byte(form.Encode()),
		ContentType: "application/x-www-form-urlencoded",
	}, nil, &tr)
	if err != nil {
		return "", err
	}
	if tr.AccessToken == "" {
		return "", a.Err("auth", domain.ErrAuthentication, errors.New("token response carried no access_token"))
	}

	expiresIn := time.Duration(tr.ExpiresIn) * time.Second
	if err := a.tokens.Put(ctx, a.Code(), tr.AccessToken, expiresIn); err != nil {
		a.Log.Warn().Err(err).Msg("Token cache write failed")
	}
	a.Log.Debug().Dur("ttl", a.tokens.TTLFor(expiresIn)).Msg("Access token refreshed")
	return tr.AccessToken, nil
}

func (a *Adapter) authURL() string {
	if a.Settings.AuthURL != "" {
		return a.Settings.AuthURL
	}
	return a.Settings.BaseURL + tokenPath
}

// call sends an authenticated JSON request. A 401 clears the cached token and
// the call is retried exactly once with a fresh one.
func (a *Adapter) call(ctx context.Context, req base.Request, payload, out any) (*base.Response, error) {
	send := func() (*base.Response, error) {
		token, err := a.accessToken(ctx)
		if err != nil {
			return nil, err
		}
		req.Header = http.Header{"Authorization": {"Bearer " + token}}
		return a.DoJSON(ctx, req, payload, out)
	}

	resp, err := send()
	if !domain.IsAuthError(err) || resp == nil {
		return resp, err
	}

	a.Log.Warn().Str("op", req.Op).Msg("Access token rejected, refreshing and retrying once")
	if ferr := a.tokens.Forget(ctx, a.Code()); ferr != nil {
		a.Log.Warn().Err(ferr).Msg("Token cache clear failed")
	}
	resp, err = send()
	if err != nil && domain.IsAuthError(err) {
		return resp, fmt.Errorf("after token refresh: %w", err)
	}
	return resp, err
}
