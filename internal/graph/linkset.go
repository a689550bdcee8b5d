package graph

// SetAnchor assigns obj to set without threading it onto the chain
// yet. obj must not already belong to any set (Anchor == NoSet); sets
// stay disjoint by construction. The linker anchors an object before
// descending into its providers and threads it afterwards, so between
// the two steps the object is anchored but not yet reachable from the
// set head.
func (a *Analyzer) SetAnchor(set LinkSetID, obj ObjectID) {
	o := a.Object(obj)
	if o.Anchor != NoSet {
		panic("graph: invariant violation: object already anchored")
	}
	o.Anchor = set
}

// PrependToChain threads an already-anchored obj onto the head of its
// set's chain.
func (a *Analyzer) PrependToChain(obj ObjectID) {
	o := a.Object(obj)
	if o.Anchor == NoSet {
		panic("graph: invariant violation: PrependToChain on unanchored object")
	}
	o.LinkNext = a.linkHeads[o.Anchor]
	a.linkHeads[o.Anchor] = obj
}

// PrependToSet anchors obj into set and threads it in one step.
func (a *Analyzer) PrependToSet(set LinkSetID, obj ObjectID) {
	a.SetAnchor(set, obj)
	a.PrependToChain(obj)
}

// RemoveFromSet splices obj out of its current set's chain by linear
// search and clears its anchor.
func (a *Analyzer) RemoveFromSet(obj ObjectID) {
	o := a.Object(obj)
	set := o.Anchor
	if set == NoSet {
		panic("graph: invariant violation: RemoveFromSet on unanchored object")
	}

	if a.linkHeads[set] == obj {
		a.linkHeads[set] = o.LinkNext
		o.Anchor = NoSet
		o.LinkNext = 0
		return
	}

	prev := a.linkHeads[set]
	for prev != 0 {
		prevObj := a.Object(prev)
		if prevObj.LinkNext == obj {
			prevObj.LinkNext = o.LinkNext
			o.Anchor = NoSet
			o.LinkNext = 0
			return
		}
		prev = prevObj.LinkNext
	}
	panic("graph: invariant violation: RemoveFromSet: object not found in its own anchor's chain")
}

// SetMembers returns the objects in set, in chain order (most recently
// prepended first).
func (a *Analyzer) SetMembers(set LinkSetID) []ObjectID {
	var out []ObjectID
	for id := a.linkHeads[set]; id != 0; id = a.Object(id).LinkNext {
		out = append(out, id)
	}
	return out
}

// IsReachableInSet reports whether obj is reachable from set's head by
// following LinkNext. CheckInvariants uses it to verify anchor
// consistency without trusting obj.Anchor alone.
func (a *Analyzer) IsReachableInSet(set LinkSetID, obj ObjectID) bool {
	for id := a.linkHeads[set]; id != 0; id = a.Object(id).LinkNext {
		if id == obj {
			return true
		}
	}
	return false
}
