/*
Package ports defines the driven ports (interfaces) for the canvass engine.

These interfaces decouple the core logic from external implementations,
letting the engine work with different session stores, config sources and
locking backends.

# Key Interfaces

  - SessionStore: persists per-call Session state.
  - ConfigSource: resolves the immutable SurveyConfig snapshot for an agent.
  - DistributedLocker: coordinates session access across replicas.
*/
package ports
