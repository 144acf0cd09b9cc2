package manifest

// Recognized manifest fields.
const (
	FieldName             = "name"
	FieldScripts          = "scripts"
	FieldDependencies     = "dependencies"
	FieldDevDependencies  = "devDependencies"
	FieldPeerDependencies = "peerDependencies"
)

// Buckets lists the dependency fields bush manages.
var Buckets = []string{FieldDependencies, FieldDevDependencies, FieldPeerDependencies}

// BucketFor returns the primary bucket of a dependency: dev and peer
// dependencies are installed as dev dependencies.
func BucketFor(dev, peer bool) string {
	if dev || peer {
		return FieldDevDependencies
	}
	return FieldDependencies
}

// Place records name@version in the bucket chosen by dev and peer. Peer
// dependencies are mirrored into peerDependencies when mirrorPeer is set.
// The name is removed from buckets it no longer belongs to.
func Place(o *Object, name, version string, dev, peer, mirrorPeer bool) {
	primary := BucketFor(dev, peer)
	o.EnsureObject(primary).Set(name, version)

	other := FieldDependencies
	if primary == FieldDependencies {
		other = FieldDevDependencies
	}
	removeDependency(o, other, name)

	switch {
	case peer && mirrorPeer:
		o.EnsureObject(FieldPeerDependencies).Set(name, version)
	case !peer:
		removeDependency(o, FieldPeerDependencies, name)
	}
}

// SortBuckets orders every present dependency bucket by key.
func SortBuckets(o *Object) {
	for _, b := range Buckets {
		if bucket, ok := o.Object(b); ok {
			bucket.SortKeys()
		}
	}
}

// ClearBuckets removes every dependency bucket.
func ClearBuckets(o *Object) {
	for _, b := range Buckets {
		o.Delete(b)
	}
}

// removeDependency deletes name from bucket and drops the bucket when that
// leaves it empty.
func removeDependency(o *Object, bucket, name string) {
	b, ok := o.Object(bucket)
	if !ok {
		return
	}
	if _, present := b.Get(name); !present {
		return
	}
	b.Delete(name)
	if b.Len() == 0 {
		o.Delete(bucket)
	}
}
