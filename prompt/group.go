package prompt

import (
	"sort"

	"github.com/mnmd-tools/mnmdsync/cloze"
)

// GroupKey identifies a ClozeGroup: either a user-written group_id, or a
// synthetic key minted for a BASIC cloze that forms a singleton group of
// its own. This is a sum type (Design Notes §9) rather than a
// stringly-typed key like "_individual_3", so callers can't accidentally
// collide a synthetic key with a real group_id.
type GroupKey interface {
	groupKey()
}

type namedKey string

func (namedKey) groupKey() {}

type singletonKey int

func (singletonKey) groupKey() {}

// NamedKey wraps a source group_id as a GroupKey.
func NamedKey(id string) GroupKey { return namedKey(id) }

// SingletonKey mints a GroupKey for a BASIC cloze with no group_id.
func SingletonKey(ordinal int) GroupKey { return singletonKey(ordinal) }

// ClozeGroup is a set of clozes sharing identity: either all clozes
// written with the same group_id, or a single BASIC cloze in a group of
// its own.
type ClozeGroup struct {
	Key        GroupKey
	IsSequence bool
	Members    []cloze.Cloze
}

// groupClozes partitions clozes into ClozeGroups in first-appearance
// order: a cloze with a group_id joins (or creates) a group under that
// key; a BASIC cloze gets its own singleton group. A
// group is a sequence group iff any member sets SequenceOrder, and its
// members are then sorted by SequenceOrder (ties broken by ByteStart,
// i.e. stably, since the input is already in source order).
func groupClozes(clozes []cloze.Cloze) []ClozeGroup {
	order := make([]GroupKey, 0, len(clozes))
	byKey := make(map[GroupKey]*ClozeGroup)

	singletons := 0
	for _, c := range clozes {
		var key GroupKey
		if c.GroupID != nil {
			key = NamedKey(*c.GroupID)
		} else {
			key = SingletonKey(singletons)
			singletons++
		}

		g, ok := byKey[key]
		if !ok {
			g = &ClozeGroup{Key: key}
			byKey[key] = g
			order = append(order, key)
		}
		g.Members = append(g.Members, c)
		if c.SequenceOrder != nil {
			g.IsSequence = true
		}
	}

	groups := make([]ClozeGroup, 0, len(order))
	for _, key := range order {
		g := *byKey[key]
		if g.IsSequence {
			sort.SliceStable(g.Members, func(i, j int) bool {
				oi, oj := sequenceOrderOf(g.Members[i]), sequenceOrderOf(g.Members[j])
				if oi != oj {
					return oi < oj
				}
				return g.Members[i].ByteStart < g.Members[j].ByteStart
			})
		}
		groups = append(groups, g)
	}
	return groups
}

func sequenceOrderOf(c cloze.Cloze) int {
	if c.SequenceOrder == nil {
		return 0
	}
	return *c.SequenceOrder
}
