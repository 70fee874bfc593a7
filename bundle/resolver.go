package bundle

import (
	"errors"
	"fmt"

	"github.com/criterion-modding/bnd2/errs"
	"github.com/criterion-modding/bnd2/format"
	"github.com/criterion-modding/bnd2/section"
)

// MaxNestedDepth bounds nested-archive recursion. Shipped archives nest at
// most one level deep; exceeding the cap is treated as a format error
// rather than risking stack exhaustion on crafted input.
const MaxNestedDepth = 2

// FindByType returns the index of the first descriptor with the given type
// id in this archive only. The bool result is false when none matches;
// callers probe speculatively, so this is not an error.
func (a *Archive) FindByType(typeID format.ResourceType) (int, bool) {
	for i := range a.Descriptors {
		if a.Descriptors[i].TypeID == typeID {
			return i, true
		}
	}

	return -1, false
}

// FindByID returns the index of the descriptor with the given resource id.
func (a *Archive) FindByID(resourceID uint64) (int, bool) {
	for i := range a.Descriptors {
		if a.Descriptors[i].ResourceID == resourceID {
			return i, true
		}
	}

	return -1, false
}

// ExtractByType locates the first resource of the given type, searching
// this archive and then recursing into nested archives, and returns its
// decompressed payload.
//
// A missing type yields an error matching errs.ErrNotFound; recursion past
// MaxNestedDepth yields errs.ErrNestedTooDeep.
func (a *Archive) ExtractByType(typeID format.ResourceType) ([]byte, error) {
	return a.extractByType(typeID, 0)
}

func (a *Archive) extractByType(typeID format.ResourceType, depth int) ([]byte, error) {
	if i, ok := a.FindByType(typeID); ok {
		return a.Payload(i)
	}

	for i := range a.Descriptors {
		payload, ok, err := a.nestedPayload(i)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if depth+1 >= MaxNestedDepth {
			return nil, fmt.Errorf("%w: depth %d while searching for %s",
				errs.ErrNestedTooDeep, depth+1, typeID)
		}
		nested, err := Parse(payload)
		if err != nil {
			// A payload that merely looks like an archive is skipped.
			continue
		}
		out, err := nested.extractByType(typeID, depth+1)
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: type %s", errs.ErrResourceNotFound, typeID)
}

// nestedPayload returns descriptor i's decompressed payload when it is
// itself a complete archive: either its type id says so, or the payload
// leads with the container magic.
func (a *Archive) nestedPayload(i int) ([]byte, bool, error) {
	d := &a.Descriptors[i]
	maybe := d.TypeID == format.TypeNestedBundle
	if !maybe && d.FirstDataPool() < 0 {
		return nil, false, nil
	}

	payload, err := a.Payload(i)
	if err != nil {
		if maybe {
			return nil, false, err
		}

		return nil, false, nil
	}
	if len(payload) >= len(section.MagicTag) && string(payload[:len(section.MagicTag)]) == section.MagicTag {
		return payload, true, nil
	}

	return nil, false, nil
}
