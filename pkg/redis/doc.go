// Package redis connects to the Redis server backing the session store.
// Connect retries until the server is ready; Healthcheck plugs into
// health endpoints.
package redis
