// Package grabbers fetches content from a remote node and writes it into the local mirror tree.
//
// Every grabber offers the same two operations:
//   - GrabAll: mirror every item of its kind
//   - GrabOne(path): mirror the single item (or framework folder, or locale) named by path
//
// Kinds that the node lists as descriptors (stacks, widgets, elements, themes) share
// [DescriptorGrabber]. Bundles are fetched concurrently, bounded by [Env.Concurrency].
// A grabber that cannot find the item named by a path returns an error wrapping
// [shared.ErrNotFound].
package grabbers
