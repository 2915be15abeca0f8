/*
Package datacat maintains a curated collection of small reference datasets.

The collection ships as plain files: the datasets under data/, a generated
readme manifest and a checksum file, all rendered from a single catalog
descriptor. This package wires the catalog operations to a collection
directory on disk, so the tooling and the tests keep the published
artifacts consistent with the data they describe.
*/
package datacat
