// Package lcaops provides an embeddable API for the deployment-support
// operations behind the lcaops CLI: ensuring a loadable model artifact
// exists and gating on application readiness.
//
// Quick start:
//
//	report, err := lcaops.EnsureArtifact(lcaops.WithModelDir("models/"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Path, report.Fallback)
//
//	ok := lcaops.WaitHealthy(ctx, lcaops.WithHealthURL("http://localhost:8501/_stcore/health"))
//
// All functions are synchronous and safe to call from deployment hooks.
package lcaops
