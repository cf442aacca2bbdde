package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStrategy struct {
	initErr error
}

func (f *fakeStrategy) Name() string                  { return "fake" }
func (f *fakeStrategy) Init(Params) error             { return f.initErr }
func (f *fakeStrategy) OnBar(Window) ([]Intent, error) { return nil, nil }
func (f *fakeStrategy) Finalize() error               { return nil }

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register("fake", func() Strategy { return &fakeStrategy{} })

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		s, err := r.New(" Fake ", nil)
		require.NoError(t, err)
		assert.Equal(t, "fake", s.Name())
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := r.New("nope", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown strategy")
	})

	t.Run("init failure propagates", func(t *testing.T) {
		cfgErr := &ConfigurationError{Strategy: "fake", Param: "x", Reason: "required"}
		r.Register("broken", func() Strategy { return &fakeStrategy{initErr: cfgErr} })
		_, err := r.New("broken", nil)
		var ce *ConfigurationError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "x", ce.Param)
	})

	assert.Equal(t, []string{"broken", "fake"}, r.List())
}

func TestParams(t *testing.T) {
	p := Params{
		"int":       5,
		"int64":     int64(7),
		"float":     1.5,
		"wholefloat": 3.0,
		"str":       "nope",
	}

	v, ok := p.Int("int")
	require.True(t, ok)
	assert.Equal(t, 5, v)

	v, ok = p.Int("int64")
	require.True(t, ok)
	assert.Equal(t, 7, v)

	// YAML/JSON decoders hand over whole floats for integers.
	v, ok = p.Int("wholefloat")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = p.Int("float")
	assert.False(t, ok)

	_, ok = p.Int("missing")
	assert.False(t, ok)

	f, ok := p.Float("float")
	require.True(t, ok)
	assert.Equal(t, 1.5, f)

	f, ok = p.Float("int")
	require.True(t, ok)
	assert.Equal(t, 5.0, f)

	_, ok = p.Float("str")
	assert.False(t, ok)
}

func TestConfigurationErrorMessage(t *testing.T) {
	err := &ConfigurationError{Strategy: "dual-ma", Param: "short_window", Reason: "must be positive"}
	assert.Contains(t, err.Error(), "dual-ma")
	assert.Contains(t, err.Error(), "short_window")
}
