package reconcile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/entities"
	derrors "github.com/DADi590/VISOR---A-better-Android-assistant/domain/errors"
	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/ports"
	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/reconcile"
	"github.com/DADi590/VISOR---A-better-Android-assistant/internal/testutil"
)

var testManifest = entities.Manifest{
	{Name: "android.permission.CAMERA", MinVersion: 21},
	{Name: "android.permission.ACCESS_FINE_LOCATION", MinVersion: 29},
}

func TestReconcile_CheckOnly(t *testing.T) {
	tests := []struct {
		name     string
		version  int
		manifest entities.Manifest
		granted  []string
		want     entities.Outcome
	}{
		{
			name:     "version gate excludes newer permission",
			version:  28,
			manifest: testManifest,
			want:     entities.Outcome{TotalRequired: 1, NotGranted: 1},
		},
		{
			name:     "both applicable and missing",
			version:  30,
			manifest: testManifest,
			want:     entities.Outcome{TotalRequired: 2, NotGranted: 2},
		},
		{
			name:     "both applicable, one granted",
			version:  30,
			manifest: testManifest,
			granted:  []string{"android.permission.CAMERA"},
			want:     entities.Outcome{TotalRequired: 2, NotGranted: 1},
		},
		{
			name:     "empty manifest",
			version:  30,
			manifest: entities.Manifest{},
			want:     entities.Outcome{},
		},
		{
			name:     "all granted",
			version:  30,
			manifest: testManifest,
			granted:  []string{"android.permission.CAMERA", "android.permission.ACCESS_FINE_LOCATION"},
			want:     entities.Outcome{TotalRequired: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grants := testutil.NewFakeGrantService()
			for _, name := range tt.granted {
				grants.State[name] = entities.Granted
			}

			r := reconcile.New(entities.Platform{Version: tt.version}, grants, grants)
			got, err := r.Reconcile(context.Background(), tt.manifest, entities.CheckOnly, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, grants.ForceCalls, "CheckOnly must never mutate grant state")
		})
	}
}

func TestReconcile_CheckOnlyIsRepeatable(t *testing.T) {
	grants := testutil.NewFakeGrantService()
	r := reconcile.New(entities.Platform{Version: 30}, grants, nil)

	first, err := r.Reconcile(context.Background(), testManifest, entities.CheckOnly, nil)
	require.NoError(t, err)
	second, err := r.Reconcile(context.Background(), testManifest, entities.CheckOnly, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second, "no external change, identical outcomes")
	assert.Empty(t, grants.ForceCalls)
}

func TestReconcile_ForcedGrant(t *testing.T) {
	t.Run("all privileged calls denied", func(t *testing.T) {
		grants := testutil.NewFakeGrantService()
		grants.DenyForce["android.permission.CAMERA"] = true
		grants.DenyForce["android.permission.ACCESS_FINE_LOCATION"] = true

		r := reconcile.New(entities.Platform{Version: 30}, grants, grants)
		got, err := r.Reconcile(context.Background(), testManifest, entities.ForcedGrant, nil)
		require.NoError(t, err)
		assert.Equal(t, entities.Outcome{TotalRequired: 2, NotGranted: 2, ForcedGrantErrors: 2}, got)
	})

	t.Run("all grants succeed", func(t *testing.T) {
		grants := testutil.NewFakeGrantService()

		r := reconcile.New(entities.Platform{Version: 30}, grants, grants)
		got, err := r.Reconcile(context.Background(), testManifest, entities.ForcedGrant, nil)
		require.NoError(t, err)
		assert.Equal(t, entities.Outcome{TotalRequired: 2}, got)
		assert.ElementsMatch(t, []string{
			"android.permission.CAMERA",
			"android.permission.ACCESS_FINE_LOCATION",
		}, grants.ForceCalls)
	})

	t.Run("accepted call still refused by platform", func(t *testing.T) {
		// The grant call reports success but a fresh state query still says
		// not granted. The authoritative count comes from the query.
		grants := testutil.NewFakeGrantService()
		grants.AcceptButRefuse["android.permission.CAMERA"] = true

		r := reconcile.New(entities.Platform{Version: 28}, grants, grants)
		got, err := r.Reconcile(context.Background(), testManifest, entities.ForcedGrant, nil)
		require.NoError(t, err)
		assert.Equal(t, entities.Outcome{TotalRequired: 1, NotGranted: 1, ForcedGrantErrors: 0}, got)
	})

	t.Run("already granted entries are not re-forced", func(t *testing.T) {
		grants := testutil.NewFakeGrantService()
		grants.State["android.permission.CAMERA"] = entities.Granted

		r := reconcile.New(entities.Platform{Version: 28}, grants, grants)
		got, err := r.Reconcile(context.Background(), testManifest, entities.ForcedGrant, nil)
		require.NoError(t, err)
		assert.Equal(t, entities.Outcome{TotalRequired: 1}, got)
		assert.Empty(t, grants.ForceCalls)
	})

	t.Run("denial handler invoked per refused permission", func(t *testing.T) {
		grants := testutil.NewFakeGrantService()
		grants.DenyForce["android.permission.CAMERA"] = true
		handler := &testutil.FakeDenialHandler{}

		r := reconcile.New(entities.Platform{Version: 28}, grants, grants,
			reconcile.WithDenialHandler(handler))
		_, err := r.Reconcile(context.Background(), testManifest, entities.ForcedGrant, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"android.permission.CAMERA"}, handler.Denied)
	})

	t.Run("outcome invariants hold for any denial mix", func(t *testing.T) {
		mixes := [][]string{
			{},
			{"android.permission.CAMERA"},
			{"android.permission.ACCESS_FINE_LOCATION"},
			{"android.permission.CAMERA", "android.permission.ACCESS_FINE_LOCATION"},
		}
		for _, denied := range mixes {
			grants := testutil.NewFakeGrantService()
			for _, name := range denied {
				grants.DenyForce[name] = true
			}
			r := reconcile.New(entities.Platform{Version: 30}, grants, grants)
			got, err := r.Reconcile(context.Background(), testManifest, entities.ForcedGrant, nil)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got.NotGranted, 0)
			assert.LessOrEqual(t, got.NotGranted, got.TotalRequired)
			assert.GreaterOrEqual(t, got.ForcedGrantErrors, 0)
			assert.LessOrEqual(t, got.ForcedGrantErrors, got.TotalRequired)
		}
	})
}

func TestReconcile_InteractiveRequest(t *testing.T) {
	t.Run("one batched request for all missing permissions", func(t *testing.T) {
		grants := testutil.NewFakeGrantService()
		surface := &testutil.FakeSurface{}

		r := reconcile.New(entities.Platform{Version: 30}, grants, nil)
		got, err := r.Reconcile(context.Background(), testManifest, entities.InteractiveRequest, surface)
		require.NoError(t, err)

		require.Len(t, surface.Batches, 1, "never one request per permission")
		assert.Equal(t, []string{
			"android.permission.CAMERA",
			"android.permission.ACCESS_FINE_LOCATION",
		}, surface.Batches[0])
		// Pre-request estimate: the user has not decided yet.
		assert.Equal(t, entities.Outcome{TotalRequired: 2, NotGranted: 2}, got)
	})

	t.Run("no batch submitted when nothing is missing", func(t *testing.T) {
		grants := testutil.NewFakeGrantService()
		grants.State["android.permission.CAMERA"] = entities.Granted
		grants.State["android.permission.ACCESS_FINE_LOCATION"] = entities.Granted
		surface := &testutil.FakeSurface{}

		r := reconcile.New(entities.Platform{Version: 30}, grants, nil)
		got, err := r.Reconcile(context.Background(), testManifest, entities.InteractiveRequest, surface)
		require.NoError(t, err)
		assert.Empty(t, surface.Batches)
		assert.Equal(t, entities.Outcome{TotalRequired: 2}, got)
	})

	t.Run("surface failure does not fail the pass", func(t *testing.T) {
		grants := testutil.NewFakeGrantService()
		surface := &testutil.FakeSurface{Err: errors.New("surface went away")}

		r := reconcile.New(entities.Platform{Version: 30}, grants, nil)
		got, err := r.Reconcile(context.Background(), testManifest, entities.InteractiveRequest, surface)
		require.NoError(t, err)
		assert.Equal(t, entities.Outcome{TotalRequired: 2, NotGranted: 2}, got)
	})
}

func TestReconcile_PlatformGate(t *testing.T) {
	t.Run("pre-runtime-grant platform short-circuits to zero outcome", func(t *testing.T) {
		grants := testutil.NewFakeGrantService()

		r := reconcile.New(entities.Platform{Version: 22}, grants, grants)
		got, err := r.Reconcile(context.Background(), testManifest, entities.CheckOnly, nil)
		require.NoError(t, err)
		assert.Equal(t, entities.Outcome{}, got)
		assert.Zero(t, grants.CheckCalls, "no grant queries below the runtime-grant version")
	})

	t.Run("strict option turns the short-circuit into PlatformTooOld", func(t *testing.T) {
		grants := testutil.NewFakeGrantService()

		r := reconcile.New(entities.Platform{Version: 22}, grants, grants,
			reconcile.WithRequireRuntimeGrants())
		_, err := r.Reconcile(context.Background(), testManifest, entities.CheckOnly, nil)
		require.Error(t, err)
		assert.True(t, derrors.IsPlatformTooOld(err))
	})
}

func TestReconcile_ContractViolations(t *testing.T) {
	tests := []struct {
		name     string
		manifest entities.Manifest
		mode     entities.Mode
		surface  ports.RequestSurface
		granter  ports.ForcedGranter
	}{
		{
			name:     "ForcedGrant with an interaction surface",
			manifest: testManifest,
			mode:     entities.ForcedGrant,
			surface:  &testutil.FakeSurface{},
			granter:  testutil.NewFakeGrantService(),
		},
		{
			name:     "ForcedGrant without a granter",
			manifest: testManifest,
			mode:     entities.ForcedGrant,
		},
		{
			name:     "InteractiveRequest without a surface",
			manifest: testManifest,
			mode:     entities.InteractiveRequest,
		},
		{
			name:     "entry with invalid minimum version",
			manifest: entities.Manifest{{Name: "android.permission.CAMERA", MinVersion: 0}},
			mode:     entities.CheckOnly,
		},
		{
			name:     "entry with empty name",
			manifest: entities.Manifest{{Name: "", MinVersion: 21}},
			mode:     entities.CheckOnly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grants := testutil.NewFakeGrantService()
			r := reconcile.New(entities.Platform{Version: 30}, grants, tt.granter)
			_, err := r.Reconcile(context.Background(), tt.manifest, tt.mode, tt.surface)
			require.Error(t, err)
			assert.True(t, derrors.IsContractViolation(err), "expected contract violation, got %v", err)
			assert.Zero(t, grants.CheckCalls, "contract violations fail before any state is touched")
		})
	}
}
