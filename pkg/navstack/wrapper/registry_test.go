package wrapper_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/navstack/pkg/navstack/navnode"
	"github.com/BrandonKowalski/navstack/pkg/navstack/wrapper"
)

func chrome(name string) wrapper.Func {
	return func(c wrapper.Container) (any, error) {
		return name + ":" + c.Key, nil
	}
}

func TestRegistryResolve(t *testing.T) {
	reg := wrapper.NewRegistry().
		Register("tabs", chrome("bar")).
		Register("split", chrome("divider"))

	fn, ok := reg.Resolve("tabs")
	require.True(t, ok)
	out, err := fn(wrapper.Container{Key: "tabs"})
	require.NoError(t, err)
	require.Equal(t, "bar:tabs", out)

	_, ok = reg.Resolve("other")
	require.False(t, ok)
	require.False(t, reg.HasWrapper("other"))
	require.Equal(t, []string{"split", "tabs"}, reg.Keys())
}

func TestRegistryDefaultEntry(t *testing.T) {
	reg := wrapper.NewRegistry().
		Register("tabs", chrome("bar")).
		Default(chrome("plain"))

	for _, key := range []string{"tabs", "other"} {
		fn, ok := reg.Resolve(key)
		require.True(t, ok)
		require.True(t, reg.HasWrapper(key))
		out, err := fn(wrapper.Container{Key: key})
		require.NoError(t, err)
		if key == "tabs" {
			require.Equal(t, "bar:tabs", out)
		} else {
			require.Equal(t, "plain:other", out)
		}
	}
}

func TestRegisterReplaces(t *testing.T) {
	reg := wrapper.NewRegistry().
		Register("tabs", chrome("old")).
		Register("tabs", chrome("new"))

	fn, _ := reg.Resolve("tabs")
	out, _ := fn(wrapper.Container{Key: "tabs"})
	require.Equal(t, "new:tabs", out)
	require.Len(t, reg.Keys(), 1)
}

func TestHasWrapperAgreesWithResolve(t *testing.T) {
	registries := map[string]*wrapper.Registry{
		"empty":        wrapper.NewRegistry(),
		"keyed":        wrapper.NewRegistry().Register("a", chrome("x")),
		"with default": wrapper.NewRegistry().Register("a", chrome("x")).Default(chrome("y")),
		"nil function": wrapper.NewRegistry().Register("a", nil),
	}

	for name, reg := range registries {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"a", "b"} {
				_, ok := reg.Resolve(key)
				require.Equal(t, ok, reg.HasWrapper(key), key)
			}
		})
	}
}

func TestRenderWith(t *testing.T) {
	tabs := navnode.NewTab("tabs", 1,
		navnode.NewScreen("a", "/a"),
		navnode.NewScreen("b", "/b"),
	)
	layout := wrapper.DefaultLayout{}

	t.Run("falls back to passthrough", func(t *testing.T) {
		out, err := wrapper.RenderWith(wrapper.NewRegistry(), layout, tabs)
		require.NoError(t, err)
		require.Equal(t, wrapper.Passthrough{Key: "tabs"}, out)

		out, err = wrapper.RenderWith(nil, layout, tabs)
		require.NoError(t, err)
		require.Equal(t, wrapper.Passthrough{Key: "tabs"}, out)
	})

	t.Run("passes container state", func(t *testing.T) {
		var got wrapper.Container
		reg := wrapper.NewRegistry().Register("tabs", func(c wrapper.Container) (any, error) {
			got = c
			return nil, nil
		})
		_, err := wrapper.RenderWith(reg, layout, tabs)
		require.NoError(t, err)
		require.Equal(t, wrapper.Container{Key: "tabs", Kind: navnode.KindTab, ActiveBranch: 1}, got)
	})

	t.Run("propagates errors", func(t *testing.T) {
		boom := errors.New("boom")
		reg := wrapper.NewRegistry().Default(func(wrapper.Container) (any, error) { return nil, boom })
		_, err := wrapper.RenderWith(reg, layout, tabs)
		require.ErrorIs(t, err, boom)
	})
}
