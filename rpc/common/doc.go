// Package common provides the configuration structures and the logging setup
// shared by the client and server side of the dGrid admin RPC system.
//
// Key Components:
//
//   - ServerConfig: Configuration of a cache hosting process, including the caches
//     it hosts, rate limiting and the transport settings.
//
//   - ClientConfig: Configuration of admin clients, controlling endpoints,
//     timeouts and retry behavior.
//
//   - Logger: Custom log format for the loggers of the dragonboat logger package,
//     which all packages of this module use (logger.GetLogger).
package common
