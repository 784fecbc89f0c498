package resolver

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/MKhiriev/go-build-keeper/models"
)

// freeKeys is the whole schema: Resolve applies no cross-field rules, so
// any present value of the right kind merges.
var freeKeys = DefaultSchema().Keys()

func drawValue(t *rapid.T, key models.SettingKey, label string) models.Value {
	spec, _ := DefaultSchema().Lookup(string(key))
	switch spec.Kind {
	case models.KindBool:
		return models.BoolValue(rapid.Bool().Draw(t, label))
	case models.KindInt:
		return models.IntValue(rapid.Int64().Draw(t, label))
	}
	return models.StringValue(rapid.StringMatching(`[a-z0-9./]{1,12}`).Draw(t, label))
}

// drawFragments splits a random subset of freeKeys into disjoint fragments.
func drawDisjointFragments(t *rapid.T) []models.Fragment {
	keys := rapid.SliceOfDistinct(rapid.SampledFrom(freeKeys), func(k models.SettingKey) models.SettingKey { return k }).Draw(t, "keys")
	n := rapid.IntRange(1, 4).Draw(t, "fragments")

	buckets := make([]map[models.SettingKey]models.Value, n)
	for i := range buckets {
		buckets[i] = map[models.SettingKey]models.Value{}
	}
	for _, k := range keys {
		i := rapid.IntRange(0, n-1).Draw(t, "bucket-"+string(k))
		buckets[i][k] = drawValue(t, k, "value-"+string(k))
	}

	fragments := make([]models.Fragment, n)
	for i, b := range buckets {
		fragments[i] = models.NewFragment(fmt.Sprintf("f%d", i), models.SourceRequest, b)
	}
	return fragments
}

func TestProperty_DisjointFragmentsMergeToUnion(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		fragments := drawDisjointFragments(t)
		perm := rapid.Permutation(fragments).Draw(t, "order")

		a, err := Resolve(unsignedVariant, fragments...)
		require.NoError(t, err)
		b, err := Resolve(unsignedVariant, perm...)
		require.NoError(t, err)

		require.True(t, a.Equal(b), "order of disjoint fragments must not matter")

		union := map[models.SettingKey]models.Value{}
		for _, f := range fragments {
			for k, v := range f.Values() {
				union[k] = v
			}
		}
		require.Equal(t, union, a.Settings())
	})
}

func TestProperty_LastFragmentWinsOnOverlap(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		key := rapid.SampledFrom(freeKeys).Draw(t, "key")
		n := rapid.IntRange(2, 5).Draw(t, "fragments")

		fragments := make([]models.Fragment, n)
		var last models.Value
		for i := range fragments {
			v := drawValue(t, key, fmt.Sprintf("value-%d", i))
			fragments[i] = models.NewFragment(fmt.Sprintf("f%d", i), models.SourceRequest, map[models.SettingKey]models.Value{key: v})
			last = v
		}

		cfg, err := Resolve(unsignedVariant, fragments...)
		require.NoError(t, err)

		got, ok := cfg.Get(key)
		require.True(t, ok)
		require.Equal(t, last, got)
		require.Equal(t, fmt.Sprintf("f%d", n-1), cfg.Origin(key))
	})
}

func TestProperty_MissingCredentialsReportedExactly(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		present := rapid.SliceOfDistinct(rapid.SampledFrom(models.SigningKeys), func(k models.SettingKey) models.SettingKey { return k }).Draw(t, "present")

		values := map[models.SettingKey]models.Value{}
		for _, k := range present {
			values[k] = drawValue(t, k, "value-"+string(k))
		}

		_, err := Resolve(signedVariant, models.NewFragment("creds", models.SourceEnv, values))

		var want []models.SettingKey
		for _, k := range models.SigningKeys {
			if _, ok := values[k]; !ok {
				want = append(want, k)
			}
		}

		if len(want) == 0 {
			require.NoError(t, err)
			return
		}

		var mc *MissingCredentialError
		require.ErrorAs(t, err, &mc)
		require.Equal(t, want, mc.Fields)
	})
}

func TestProperty_UnsignedVariantIgnoresCredentials(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		fragments := drawDisjointFragments(t)
		_, err := Resolve(unsignedVariant, fragments...)
		require.NoError(t, err)
	})
}

func TestProperty_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		fragments := drawDisjointFragments(t)
		variant := models.Variant{Name: "v", RequiresSigning: rapid.Bool().Draw(t, "signing")}

		a, errA := Resolve(variant, fragments...)
		b, errB := Resolve(variant, fragments...)

		require.Equal(t, errA == nil, errB == nil)
		if errA != nil {
			require.Equal(t, errA.Error(), errB.Error())
			return
		}
		require.True(t, a.Equal(b))
	})
}
