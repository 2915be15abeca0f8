// Package model describes the base objects manipulated by datacat.
//
// The package exposes a model for catalog metadata.
//
// The object model for datacat is composed of:
//
//  Catalogs:
//    A catalog is the manifest of a curated data collection. It records every
//    dataset file distributed with the collection, together with its provenance.
//
//  Datasets:
//    A dataset is a single distributed file. Its descriptor carries the origin
//    organization, the authors, the release date and the license of the data.
//
//  Checksum entries:
//    A checksum entry pins the sha256 digest of a distributed file, so that
//    consumers may detect corrupted downloads.
package model
