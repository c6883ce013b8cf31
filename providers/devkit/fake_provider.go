package devkit

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-session/core"
)

// AcquisitionScript is one scripted outcome of a silent or interactive
// token acquisition.
type AcquisitionScript struct {
	Result core.AuthenticationResult
	Err    error
}

// FakeProviderClient is a scripted in-memory core.ProviderClient for
// exercising the session service without a real identity provider.
// Scripts are consumed in order; the last script repeats once the list
// is exhausted.
type FakeProviderClient struct {
	mu                 sync.Mutex
	accounts           []core.Account
	status             core.InteractionStatus
	statusErr          error
	silentScripts      []AcquisitionScript
	interactiveScripts []AcquisitionScript
	silentRequests     []core.TokenRequest
	interactiveReqs    []core.TokenRequest
}

func NewFakeProviderClient() *FakeProviderClient {
	return &FakeProviderClient{status: core.InteractionStatusNone}
}

func (c *FakeProviderClient) WithAccounts(accounts ...core.Account) *FakeProviderClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts = append([]core.Account(nil), accounts...)
	return c
}

func (c *FakeProviderClient) WithStatus(status core.InteractionStatus) *FakeProviderClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
	return c
}

func (c *FakeProviderClient) WithStatusError(err error) *FakeProviderClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statusErr = err
	return c
}

func (c *FakeProviderClient) ScriptSilent(scripts ...AcquisitionScript) *FakeProviderClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.silentScripts = append(c.silentScripts, scripts...)
	return c
}

func (c *FakeProviderClient) ScriptInteractive(scripts ...AcquisitionScript) *FakeProviderClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interactiveScripts = append(c.interactiveScripts, scripts...)
	return c
}

func (c *FakeProviderClient) SsoSilent(_ context.Context, req core.TokenRequest) (core.AuthenticationResult, error) {
	if c == nil {
		return core.AuthenticationResult{}, fmt.Errorf("devkit: fake provider client is nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.silentRequests = append(c.silentRequests, cloneTokenRequest(req))
	return runScript(c.silentScripts, len(c.silentRequests)-1, "silent")
}

func (c *FakeProviderClient) LoginPopup(_ context.Context, req core.TokenRequest) (core.AuthenticationResult, error) {
	if c == nil {
		return core.AuthenticationResult{}, fmt.Errorf("devkit: fake provider client is nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interactiveReqs = append(c.interactiveReqs, cloneTokenRequest(req))
	return runScript(c.interactiveScripts, len(c.interactiveReqs)-1, "interactive")
}

func (c *FakeProviderClient) Accounts(context.Context) ([]core.Account, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]core.Account(nil), c.accounts...), nil
}

func (c *FakeProviderClient) InteractionStatus(context.Context) (core.InteractionStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.statusErr != nil {
		return "", c.statusErr
	}
	return c.status, nil
}

// SilentRequests returns a copy of every silent acquisition request
// seen so far.
func (c *FakeProviderClient) SilentRequests() []core.TokenRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]core.TokenRequest(nil), c.silentRequests...)
}

func (c *FakeProviderClient) InteractiveRequests() []core.TokenRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]core.TokenRequest(nil), c.interactiveReqs...)
}

func runScript(scripts []AcquisitionScript, index int, mode string) (core.AuthenticationResult, error) {
	if len(scripts) == 0 {
		return core.AuthenticationResult{}, fmt.Errorf("devkit: no %s acquisition scripted", mode)
	}
	if index >= len(scripts) {
		index = len(scripts) - 1
	}
	script := scripts[index]
	return cloneResult(script.Result), script.Err
}

func cloneTokenRequest(req core.TokenRequest) core.TokenRequest {
	out := core.TokenRequest{Scopes: append([]string(nil), req.Scopes...)}
	if req.Account != nil {
		account := *req.Account
		out.Account = &account
	}
	return out
}

func cloneResult(result core.AuthenticationResult) core.AuthenticationResult {
	out := result
	out.Scopes = append([]string(nil), result.Scopes...)
	if len(result.Claims) > 0 {
		claims := make(map[string]any, len(result.Claims))
		for key, value := range result.Claims {
			claims[key] = value
		}
		out.Claims = claims
	}
	return out
}

func normalizeKind(kind core.ProviderEventKind) core.ProviderEventKind {
	return core.ProviderEventKind(strings.TrimSpace(string(kind)))
}

var _ core.ProviderClient = (*FakeProviderClient)(nil)
