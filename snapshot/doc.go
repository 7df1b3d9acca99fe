// Package snapshot persists encoded vectors to a blobstore.BlobStore.
//
// Snapshots are the frames produced by vecbuf.Vector.Encode. IO is optionally
// throttled and bulk saves are bounded by a resource.Controller.
//
//	snaps := snapshot.New(blobstore.NewLocalStore(dir),
//	    snapshot.WithEncodeOptions(vecbuf.WithCompression(compress.Zstd)),
//	)
//	if err := snaps.Save(ctx, "weights", v); err != nil {
//	    return err
//	}
//	w, err := snaps.Load(ctx, "weights")
package snapshot
