// Package rsutax computes the Indian capital-gains tax liability arising from
// selling vested foreign-equity stock compensation (RSUs traded in USD).
//
// The pipeline: convert every USD transaction to INR at the SBI telegraphic
// transfer buying rate of the prior month-end (rule 115), match sales to
// vesting lots first-in-first-out, classify each disposal as short- or
// long-term, apply the statutory loss set-off rules, add surcharge and cess,
// derive the cumulative advance-tax schedule, and suggest unrealized losses
// worth harvesting.
//
// The engine is a pure function of its inputs: rates table, sales, lots,
// configuration. Nothing is persisted between runs.
package rsutax
