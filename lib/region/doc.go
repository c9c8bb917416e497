// Package region describes the configuration of cache regions.
//
// Config is the mutable configuration a member builds locally. Besides plain
// settings it can hold listeners, which only make sense inside the process that
// registered them. Attributes is the immutable snapshot of a configuration that
// is sent to other members: Snapshot copies every setting and keeps only the
// names of the listeners.
//
// Attributes registers itself in serializer.DefaultRegistry under
// TagRegionAttributes, so messages can carry it as a polymorphic object.
//
// The path helpers define how regions are addressed: names are joined with
// Separator, and leading, trailing or repeated separators are ignored.
package region
