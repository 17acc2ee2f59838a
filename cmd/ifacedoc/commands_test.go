package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/ifacedoc"
	main "github.com/fwojciec/ifacedoc/cmd/ifacedoc"
	"github.com/fwojciec/ifacedoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeps(svc ifacedoc.InterfaceService) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:        context.Background(),
		Stdout:     stdout,
		Stderr:     stderr,
		Interfaces: svc,
	}, stdout, stderr
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists interfaces with category and member counts", func(t *testing.T) {
		t.Parallel()

		svc := &mock.InterfaceService{
			FindInterfacesFn: func(_ context.Context, _ ifacedoc.InterfaceFilter) ([]*ifacedoc.Interface, error) {
				return []*ifacedoc.Interface{
					{
						Name:       "Application",
						Category:   ifacedoc.CategoryObject,
						Properties: []*ifacedoc.Property{{Name: "Name"}},
					},
					{
						Name:     "Documents",
						Category: ifacedoc.CategoryCollection,
						Methods:  []*ifacedoc.Method{{Name: "Add"}},
					},
				}, nil
			},
		}

		deps, stdout, _ := testDeps(svc)
		cmd := &main.ListCmd{}

		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "Application")
		assert.Contains(t, output, "Documents")
		assert.Contains(t, output, "Collection")
	})

	t.Run("shows helpful message when store is empty", func(t *testing.T) {
		t.Parallel()

		svc := &mock.InterfaceService{
			FindInterfacesFn: func(_ context.Context, _ ifacedoc.InterfaceFilter) ([]*ifacedoc.Interface, error) {
				return nil, nil
			},
		}

		deps, stdout, _ := testDeps(svc)
		require.NoError(t, (&main.ListCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "ifacedoc crawl")
	})

	t.Run("passes limit and offset through", func(t *testing.T) {
		t.Parallel()

		var gotFilter ifacedoc.InterfaceFilter
		svc := &mock.InterfaceService{
			FindInterfacesFn: func(_ context.Context, filter ifacedoc.InterfaceFilter) ([]*ifacedoc.Interface, error) {
				gotFilter = filter
				return nil, nil
			},
		}

		deps, _, _ := testDeps(svc)
		require.NoError(t, (&main.ListCmd{Limit: 5, Offset: 10}).Run(deps))
		assert.Equal(t, 5, gotFilter.Limit)
		assert.Equal(t, 10, gotFilter.Offset)
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("shows full interface details", func(t *testing.T) {
		t.Parallel()

		svc := &mock.InterfaceService{
			FindInterfaceByNameFn: func(_ context.Context, name string) (*ifacedoc.Interface, error) {
				return &ifacedoc.Interface{
					Name:        "Measurable",
					Category:    ifacedoc.CategoryObject,
					Description: "Measurable object.",
					Role:        "Gives access to measures.",
					Hierarchy:   []string{"AnyObject", "Measurable"},
					SourceURL:   "http://example.com/interface_Measurable.htm",
					Properties: []*ifacedoc.Property{
						{Name: "Length", Type: "double", Access: ifacedoc.AccessReadOnly, Description: "Returns the length."},
					},
					Methods: []*ifacedoc.Method{
						{
							Name:        "GetLength",
							Signature:   "GetLength(oLength) As double",
							Description: "Computes the length.",
							Params:      []*ifacedoc.Param{{Name: "oLength", Description: "The computed length."}},
						},
					},
				}, nil
			},
		}

		deps, stdout, _ := testDeps(svc)
		require.NoError(t, (&main.ShowCmd{Name: "Measurable"}).Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "Measurable (Object)")
		assert.Contains(t, output, "AnyObject -> Measurable")
		assert.Contains(t, output, "Role: Gives access to measures.")
		assert.Contains(t, output, "Length (double, Read Only)")
		assert.Contains(t, output, "GetLength(oLength) As double")
		assert.Contains(t, output, "oLength: The computed length.")
	})

	t.Run("reports a missing interface", func(t *testing.T) {
		t.Parallel()

		svc := &mock.InterfaceService{
			FindInterfaceByNameFn: func(_ context.Context, name string) (*ifacedoc.Interface, error) {
				return nil, ifacedoc.Errorf(ifacedoc.ENOTFOUND, "interface not found")
			},
		}

		deps, _, stderr := testDeps(svc)
		err := (&main.ShowCmd{Name: "Nope"}).Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), `interface "Nope" not found`)
	})
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("searches by substring", func(t *testing.T) {
		t.Parallel()

		var gotFilter ifacedoc.InterfaceFilter
		svc := &mock.InterfaceService{
			FindInterfacesFn: func(_ context.Context, filter ifacedoc.InterfaceFilter) ([]*ifacedoc.Interface, error) {
				gotFilter = filter
				return []*ifacedoc.Interface{{Name: "Document", Description: "Document object."}}, nil
			},
		}

		deps, stdout, _ := testDeps(svc)
		require.NoError(t, (&main.SearchCmd{Query: "docu"}).Run(deps))

		require.NotNil(t, gotFilter.Query)
		assert.Equal(t, "docu", *gotFilter.Query)
		assert.Contains(t, stdout.String(), "Document")
	})

	t.Run("reports no matches", func(t *testing.T) {
		t.Parallel()

		svc := &mock.InterfaceService{
			FindInterfacesFn: func(_ context.Context, _ ifacedoc.InterfaceFilter) ([]*ifacedoc.Interface, error) {
				return nil, nil
			},
		}

		deps, stdout, _ := testDeps(svc)
		require.NoError(t, (&main.SearchCmd{Query: "zzz"}).Run(deps))
		assert.Contains(t, stdout.String(), `No interfaces match "zzz"`)
	})
}

func TestCollectionsCmd_Run(t *testing.T) {
	t.Parallel()

	var gotFilter ifacedoc.InterfaceFilter
	svc := &mock.InterfaceService{
		FindInterfacesFn: func(_ context.Context, filter ifacedoc.InterfaceFilter) ([]*ifacedoc.Interface, error) {
			gotFilter = filter
			return []*ifacedoc.Interface{{Name: "Documents", Description: "A set of documents."}}, nil
		},
	}

	deps, stdout, _ := testDeps(svc)
	require.NoError(t, (&main.CollectionsCmd{}).Run(deps))

	require.NotNil(t, gotFilter.Collection)
	assert.True(t, *gotFilter.Collection)
	assert.Contains(t, stdout.String(), "Documents")
}

func TestStatsCmd_Run(t *testing.T) {
	t.Parallel()

	svc := &mock.InterfaceService{
		StatsFn: func(_ context.Context) (*ifacedoc.Stats, error) {
			return &ifacedoc.Stats{Interfaces: 50, Properties: 120, Methods: 200, Collections: 7}, nil
		},
	}

	deps, stdout, _ := testDeps(svc)
	require.NoError(t, (&main.StatsCmd{}).Run(deps))

	output := stdout.String()
	assert.Contains(t, output, "Interfaces:  50")
	assert.Contains(t, output, "Collections: 7")
	assert.Contains(t, output, "Properties:  120")
	assert.Contains(t, output, "Methods:     200")
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires force flag", func(t *testing.T) {
		t.Parallel()

		deleted := false
		svc := &mock.InterfaceService{
			DeleteInterfaceFn: func(_ context.Context, name string) error {
				deleted = true
				return nil
			},
		}

		deps, _, stderr := testDeps(svc)
		err := (&main.DeleteCmd{Name: "Application"}).Run(deps)
		require.Error(t, err)
		assert.Equal(t, ifacedoc.EINVALID, ifacedoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
		assert.False(t, deleted)
	})

	t.Run("deletes with force", func(t *testing.T) {
		t.Parallel()

		var deletedName string
		svc := &mock.InterfaceService{
			DeleteInterfaceFn: func(_ context.Context, name string) error {
				deletedName = name
				return nil
			},
		}

		deps, stdout, _ := testDeps(svc)
		require.NoError(t, (&main.DeleteCmd{Name: "Application", Force: true}).Run(deps))
		assert.Equal(t, "Application", deletedName)
		assert.Contains(t, stdout.String(), `Deleted interface "Application"`)
	})

	t.Run("reports a missing interface", func(t *testing.T) {
		t.Parallel()

		svc := &mock.InterfaceService{
			DeleteInterfaceFn: func(_ context.Context, name string) error {
				return ifacedoc.Errorf(ifacedoc.ENOTFOUND, "interface not found")
			},
		}

		deps, _, stderr := testDeps(svc)
		err := (&main.DeleteCmd{Name: "Nope", Force: true}).Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), `interface "Nope" not found`)
	})
}
