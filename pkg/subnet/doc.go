/*
Package subnet holds the canonical subnet value used throughout subnet-siphon.

Lines are parsed non-strictly: host bits beyond the prefix length are masked
instead of rejected, so "10.0.0.5/8" and "10.0.0.0/8" are the same subnet.
Lines which can't be parsed at all are reported as skipped results and never
reach the reducer.
*/
package subnet
