// Package config provides process configuration for the chess relay server.
//
// The config package handles:
//   - Loading settings from environment variables with defaults
//   - Validation of run mode, port and maintenance intervals
//
// Configuration Variables:
//
//   - PORT: HTTP listen port (default 8080)
//   - MODE: dev or prod (default dev); prod logs JSON and archives
//     evicted rooms, dev logs pretty console output
//   - STATIC_DIR: directory served at / (default ./static)
//   - ROOM_TTL: idle age after which an empty room is evicted (default 1h)
//   - CLEANUP_INTERVAL: how often the janitor scans for idle rooms
//     (default 5m)
//   - ARCHIVE_DIR: where evicted rooms are written in prod (default
//     ./archive)
//   - LOG_LEVEL: zerolog level name (default info)
//   - NGROK_ENABLED: expose the server through an ngrok tunnel (default
//     false)
//
// Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal().Err(err).Msg("configuration")
//	}
//	http.ListenAndServe(cfg.Addr(), handler)
//
// A .env file in the working directory is honored at startup; real
// environment variables take precedence over it.
package config
