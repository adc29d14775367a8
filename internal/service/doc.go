// Package service provides the service registry for explorer tool dispatch.
//
// The registry maintains a catalog of available service providers and handles
// service discovery, tool execution, and relevance scoring for free-text
// queries.
//
// Components:
//   - Registry: Central service catalog
//   - Provider: Interface for service implementations
//
// Discovery Algorithm:
//   - Keyword matching in name/description
//   - Capability matching
//   - Category bonus for exact matches
//   - Score-based ranking
//
// Example Usage:
//
//	registry := service.NewRegistry().WithLogger(log)
//	registry.Register(explorer.NewProvider(ws))
//	services := registry.Discover("navigate folder", 5)
//	result, err := registry.Execute(ctx, "explorer.list", params, appCtx)
package service
