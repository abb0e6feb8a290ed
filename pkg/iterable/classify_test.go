package iterable

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type point struct {
	X, Y  int
	label string
}

type ring []int

func (r ring) Len() int     { return len(r) }
func (r ring) At(i int) any { return r[i%len(r)] }

func TestClassify(t *testing.T) {
	t.Run("IsLength", func(t *testing.T) {
		require.True(t, IsLength(0))
		require.True(t, IsLength(3))
		require.True(t, IsLength(uint8(7)))
		require.True(t, IsLength(2.0))
		require.True(t, IsLength(int64(MaxSafeInteger)))

		require.False(t, IsLength(-1))
		require.False(t, IsLength(1.5))
		require.False(t, IsLength(int64(MaxSafeInteger)+2))
		require.False(t, IsLength(math.NaN()))
		require.False(t, IsLength(math.Inf(1)))
		require.False(t, IsLength("2"))
		require.False(t, IsLength(nil))
	})

	t.Run("IsIterable", func(t *testing.T) {
		require.True(t, IsIterable(""))
		require.True(t, IsIterable(map[string]any{}))
		require.True(t, IsIterable([]any{}))
		require.True(t, IsIterable(point{}))
		require.True(t, IsIterable(func() {}))
		require.True(t, IsIterable(ring{1}))

		require.False(t, IsIterable(nil))
		require.False(t, IsIterable((*point)(nil)))
		require.False(t, IsIterable(false))
		require.False(t, IsIterable(true))
		require.False(t, IsIterable(math.NaN()))
		require.False(t, IsIterable(math.Inf(1)))
		require.False(t, IsIterable(42))
	})

	t.Run("Malformed Length", func(t *testing.T) {
		bad := map[string]any{"length": -1}
		require.False(t, IsIterable(bad))
		require.False(t, IsArrayLike(bad))

		_, err := Iterate(bad)
		require.ErrorIs(t, err, ErrType)
		require.EqualError(t, err, "type error: [object Object] is not iterable")
	})

	t.Run("IsArrayLike", func(t *testing.T) {
		require.True(t, IsArrayLike(""))
		require.True(t, IsArrayLike([]any{}))
		require.True(t, IsArrayLike([2]any{}))
		require.True(t, IsArrayLike(map[string]any{"0": 0, "length": 1}))
		require.True(t, IsArrayLike(ring{}))

		require.False(t, IsArrayLike(map[string]any{"0": 0}))
		require.False(t, IsArrayLike(map[string]any{}))
		require.False(t, IsArrayLike(nil))
		require.False(t, IsArrayLike(false))
		require.False(t, IsArrayLike(true))
		require.False(t, IsArrayLike(math.NaN()))
		require.False(t, IsArrayLike(math.Inf(1)))
	})

	t.Run("TypeOf", func(t *testing.T) {
		cases := []struct {
			value any
			want  string
		}{
			{nil, TagNull},
			{(*point)(nil), TagNull},
			{true, TagBoolean},
			{3, TagNumber},
			{2.5, TagNumber},
			{complex(1, 2), TagNumber},
			{"hi", TagString},
			{[]int{1}, TagArray},
			{[2]any{"a", 1}, TagArray},
			{ring{}, TagArray},
			{map[string]any{}, TagObject},
			{orderedmap.New[string, any](), TagObject},
			{point{}, TagObject},
			{&point{}, TagObject},
			{func() {}, TagFunction},
			{make(chan int), TagObject},
		}
		for _, c := range cases {
			require.Equal(t, c.want, TypeOf(c.value), "%#v", c.value)
		}
	})

	t.Run("Size", func(t *testing.T) {
		n, err := Size([]int{1, 2, 3})
		require.NoError(t, err)
		require.Equal(t, 3, n)

		n, err = Size("héllo")
		require.NoError(t, err)
		require.Equal(t, 5, n)

		n, err = Size(map[string]any{"a": 1, "b": 2})
		require.NoError(t, err)
		require.Equal(t, 2, n)

		n, err = Size(point{})
		require.NoError(t, err)
		require.Equal(t, 2, n)

		_, err = Size(7)
		require.ErrorIs(t, err, ErrType)
		require.Regexp(t, `\[object Number\] is not iterable`, err.Error())
	})

	t.Run("KeyOf", func(t *testing.T) {
		require.Equal(t, "1", KeyOf(1))
		require.Equal(t, "1.5", KeyOf(1.5))
		require.Equal(t, "true", KeyOf(true))
		require.Equal(t, "null", KeyOf(nil))
		require.Equal(t, "name", KeyOf("name"))
		require.Equal(t, "{1 2 }", KeyOf(point{X: 1, Y: 2}))
	})
}

func TestShape(t *testing.T) {
	t.Run("Map Key Order", func(t *testing.T) {
		s := shapeOf(map[string]int{"b": 1, "10": 2, "a": 3, "2": 4, "01": 5})
		require.Equal(t, []string{"2", "10", "01", "a", "b"}, s.keys())
	})

	t.Run("Non String Map Keys", func(t *testing.T) {
		s := shapeOf(map[int]string{3: "c", 1: "a"})
		require.Equal(t, []string{"1", "3"}, s.keys())

		v, ok := s.lookup("3")
		require.True(t, ok)
		require.Equal(t, "c", v)
	})

	t.Run("Struct Fields", func(t *testing.T) {
		s := shapeOf(&point{X: 1, Y: 2, label: "hidden"})
		require.Equal(t, []string{"X", "Y"}, s.keys())

		v, ok := s.lookup("Y")
		require.True(t, ok)
		require.Equal(t, 2, v)

		_, ok = s.lookup("label")
		require.False(t, ok)
	})

	t.Run("Ordered Map Keeps Insertion Order", func(t *testing.T) {
		om := orderedmap.New[string, any]()
		om.Set("z", 1)
		om.Set("a", 2)
		require.Equal(t, []string{"z", "a"}, shapeOf(om).keys())
	})

	t.Run("Keyed Array Like Elements", func(t *testing.T) {
		s := shapeOf(map[string]any{"length": 3, "0": "a", "2": "c", "7": "ignored"})
		snap, err := s.elements()
		require.NoError(t, err)
		require.Equal(t, 3, snap.len())
		require.Equal(t, "a", snap.at(0))
		require.Nil(t, snap.at(1))
		require.Equal(t, "c", snap.at(2))
	})

	t.Run("Keyed Length Above Array Limit", func(t *testing.T) {
		s := shapeOf(map[string]any{"length": MaxSafeInteger})
		_, err := s.elements()
		require.ErrorIs(t, err, ErrRange)
		require.EqualError(t, err, "range error: invalid array length 9007199254740991")

		n, err := Size(map[string]any{"length": MaxSafeInteger})
		require.NoError(t, err)
		require.Equal(t, MaxSafeInteger, n)
	})

	t.Run("Colliding Map Keys", func(t *testing.T) {
		s := shapeOf(map[any]any{1: "a", "1": "b", int8(2): "x", uint(2): "y"})
		require.Equal(t, []string{"1", "2"}, s.keys())

		v, ok := s.lookup("1")
		require.True(t, ok)
		require.Equal(t, "b", v)

		v, ok = s.lookup("2")
		require.True(t, ok)
		require.Equal(t, "x", v)
	})
}
