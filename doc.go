// Package cmvns is a constrained multivariate-normal sampling engine for
// Bayesian inference over spatial random fields — the MCMC core of a
// species-distribution model, where a latent Gaussian field must respect
// hard sign constraints at observed locations.
//
// 🚀 What is cmvns?
//
//	A sampling toolkit for latent Gaussian vectors under linear
//	inequality constraints, built on low-rank covariance factorizations:
//	  • Per-coordinate feasible-interval computation from active
//	    sign constraints (offdiagonal projections)
//	  • Importance-resampling and Metropolis-Hastings coordinate
//	    updates on truncated-normal proposals
//	  • Per-coordinate adaptive proposal-scale tuning
//	  • Minimal-jump basis rotation when a low-rank pivot set is
//	    re-sampled, keeping joint proposals symmetric
//
// ✨ Why choose cmvns?
//
//   - Explicit dependency injection – samplers receive their likelihood
//     and constraint node sets as arguments, never by graph introspection
//   - Reproducible – every stochastic operation draws from an injected,
//     seedable source; no ambient generator
//   - Strict bookkeeping – rejected proposals revert bit-exactly, and
//     cache/constraint inconsistencies surface as fatal errors instead
//     of silently corrupting the chain
//
// Under the hood, everything is organized under four subpackages:
//
//	linalg/  — triangular solves, Cholesky, pivot sorting, minimal jumps
//	model/   — probability-model node abstraction (values, caches, children)
//	sampler/ — constraint sets, coordinate samplers, adaptive tuner
//	lowrank/ — pivot-set rotation sampler with minimal-jump correction
//
// Quick sketch:
//
//	g ~ N(0, I)        whitened coordinates
//	f = Uᵀ g           field values, U upper-triangular
//	od·g ≥ 0 (sign +1) hard sign constraints at evaluation points
//
// Dive into each package's doc.go for the full contract, and into
// example_test.go files for runnable walkthroughs.
//
//	go get github.com/katalvlaran/cmvns
package cmvns
