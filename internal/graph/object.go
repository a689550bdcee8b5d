package graph

import "github.com/symld/symld/internal/arena"

// Object represents one archive member or standalone compiled unit.
//
// Invariant: every Xref in Exports[i] or Imports[i] has Obj equal to
// this object's own ID (checked by CheckInvariants).
type Object struct {
	Name    arena.Name
	Library LibraryID // 0 if standalone

	Exports []XrefID // ordered by ingest
	Imports []XrefID // ordered by ingest

	Anchor   LinkSetID
	LinkNext ObjectID // next object in Anchor's chain, 0 at the tail
}

// Library groups objects by originating archive, used only for
// disambiguated human-facing lookup.
type Library struct {
	Name    arena.Name
	Members []ObjectID // in ingest order
}

// Object returns the Object for id, or nil if id is out of range.
func (a *Analyzer) Object(id ObjectID) *Object {
	if id <= 0 || int(id) > len(a.objects) {
		return nil
	}
	return &a.objects[id-1]
}

// ObjectName returns the interned display-independent short name of
// an object (the member name without the owning library prefix).
func (a *Analyzer) ObjectName(id ObjectID) string {
	obj := a.Object(id)
	if obj == nil {
		return ""
	}
	return a.Arena.String(obj.Name)
}

// DisplayName renders an object's human-facing name: "lib[member]"
// for an archive member, the bare name otherwise.
func (a *Analyzer) DisplayName(id ObjectID) string {
	obj := a.Object(id)
	if obj == nil {
		return ""
	}
	name := a.Arena.String(obj.Name)
	if obj.Library == 0 {
		return name
	}
	return a.Arena.String(a.Library(obj.Library).Name) + "[" + name + "]"
}

// Library returns the Library for id, or nil if id is 0 or out of
// range.
func (a *Analyzer) Library(id LibraryID) *Library {
	if id <= 0 || int(id) > len(a.libraries) {
		return nil
	}
	return &a.libraries[id-1]
}

// NumObjects reports how many objects have been created, including the
// synthetic Undefined-pod.
func (a *Analyzer) NumObjects() int {
	return len(a.objects)
}

// Objects iterates all objects in ingest order, including the
// undefined pod (always first, since New creates it before any
// listing is ingested).
func (a *Analyzer) Objects() []ObjectID {
	ids := make([]ObjectID, 0, len(a.objects))
	for i := range a.objects {
		ids = append(ids, ObjectID(i+1))
	}
	return ids
}

// NewObject creates a new standalone object (no owning library) and
// appends it to the global object list.
func (a *Analyzer) NewObject(name string) ObjectID {
	return a.newObject(name, 0)
}

// NewLibraryObject creates or reuses libName's Library record and
// appends a new member object to it. It returns (0, false) if
// (libName, memberName) was already registered; duplicate archive
// members are rejected.
func (a *Analyzer) NewLibraryObject(libName, memberName string) (ObjectID, bool) {
	libID := a.getOrCreateLibrary(libName)
	lib := a.Library(libID)
	for _, existing := range lib.Members {
		if a.ObjectName(existing) == memberName {
			return 0, false
		}
	}
	id := a.newObject(memberName, libID)
	lib.Members = append(lib.Members, id)
	return id, true
}

func (a *Analyzer) newObject(name string, lib LibraryID) ObjectID {
	a.objects = append(a.objects, Object{
		Name:    a.Arena.Intern(name),
		Library: lib,
	})
	return ObjectID(len(a.objects))
}

func (a *Analyzer) getOrCreateLibrary(name string) LibraryID {
	n := a.Arena.Intern(name)
	if id, ok := a.libraryByName[n]; ok {
		return id
	}
	a.libraries = append(a.libraries, Library{Name: n})
	id := LibraryID(len(a.libraries))
	a.libraryByName[n] = id
	return id
}
