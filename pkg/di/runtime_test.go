package di_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/devantler-tech/olschat/pkg/client/ols"
	"github.com/devantler-tech/olschat/pkg/di"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errModule = errors.New("module error")

// authServer answers authorization checks and records the bearer tokens it saw.
func authServer(t *testing.T) (*httptest.Server, func() []string) {
	t.Helper()

	var (
		mu     sync.Mutex
		tokens []string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		tokens = append(tokens, r.Header.Get("Authorization"))
		mu.Unlock()

		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	return server, func() []string {
		mu.Lock()
		defer mu.Unlock()

		return append([]string(nil), tokens...)
	}
}

func TestInvoke_ServiceTokenFallsBackToKubeconfig(t *testing.T) {
	t.Parallel()

	server, seen := authServer(t)

	cfg := newTestConfig(t)
	cfg.Spec.Service.URL = server.URL

	err := di.NewRuntime().Invoke(func(injector di.Injector) error {
		client, err := di.ResolveOLSClient(injector)
		require.NoError(t, err)

		status, err := client.CheckAuth(t.Context())
		require.NoError(t, err)
		assert.Equal(t, ols.AuthAuthorized, status)

		return nil
	}, di.ConfigModule(cfg))

	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer kube-token"}, seen())
}

func TestInvoke_ConfiguredServiceTokenWins(t *testing.T) {
	t.Parallel()

	server, seen := authServer(t)

	cfg := newTestConfig(t)
	cfg.Spec.Service.URL = server.URL
	cfg.Spec.Service.Token = "service-token"

	err := di.NewRuntime().Invoke(func(injector di.Injector) error {
		client, err := di.ResolveOLSClient(injector)
		require.NoError(t, err)

		_, err = client.CheckAuth(t.Context())

		return err
	}, di.ConfigModule(cfg))

	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer service-token"}, seen())
}

func TestInvoke_MissingServiceURLFailsSession(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	cfg.Spec.Service.URL = ""

	err := di.NewRuntime().Invoke(func(injector di.Injector) error {
		_, _, err := di.NewSession(injector, nil)

		return err
	}, di.ConfigModule(cfg))

	require.ErrorContains(t, err, ols.ErrBaseURLRequired.Error())
}

func TestInvoke_FreshInjectorPerInvocation(t *testing.T) {
	t.Parallel()

	runtime := di.NewRuntime()

	for _, url := range []string{"https://one.example.com", "https://two.example.com"} {
		cfg := newTestConfig(t)
		cfg.Spec.Service.URL = url

		err := runtime.Invoke(func(injector di.Injector) error {
			resolved, err := di.ResolveConfig(injector)
			require.NoError(t, err)
			assert.Equal(t, url, resolved.Spec.Service.URL)

			return nil
		}, di.ConfigModule(cfg))
		require.NoError(t, err)
	}
}

func TestInvoke_ModuleErrorSkipsHandler(t *testing.T) {
	t.Parallel()

	called := false
	failing := func(di.Injector) error { return errModule }

	err := di.NewRuntime().Invoke(func(di.Injector) error {
		called = true

		return nil
	}, nil, failing, di.ConfigModule(newTestConfig(t)))

	require.ErrorIs(t, err, errModule)
	assert.False(t, called)
}
