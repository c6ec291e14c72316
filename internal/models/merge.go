package models

import "slices"

// setIfPresent implements the partial-update rule: copy src into dst when src is set.
// It reports whether dst changed.
func setIfPresent[T comparable](dst *T, src *T) bool {
	if src == nil || *dst == *src {
		return false
	}
	*dst = *src
	return true
}

func setSliceIfPresent[T comparable](dst *[]T, src *[]T) bool {
	if src == nil || slices.Equal(*dst, *src) {
		return false
	}
	*dst = slices.Clone(*src)
	return true
}

// setOptionalIfPresent handles fields that are themselves optional, like original_price.
func setOptionalIfPresent[T comparable](dst **T, src *T) bool {
	if src == nil {
		return false
	}
	if *dst != nil && **dst == *src {
		return false
	}
	v := *src
	*dst = &v
	return true
}
