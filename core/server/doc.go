// Package server wraps http.Server with graceful shutdown, functional
// options and environment-driven configuration.
//
// The usual entry point is Run combined with errgroup:
//
//	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	eg, ctx := errgroup.WithContext(ctx)
//	eg.Go(srv.Run(ctx, router))
//	return eg.Wait()
//
// When ctx is canceled the server stops accepting connections and waits up
// to the shutdown timeout for in-flight requests. TLS is enabled with
// WithTLS or by setting SERVER_TLS_CERT_FILE and SERVER_TLS_KEY_FILE.
package server
