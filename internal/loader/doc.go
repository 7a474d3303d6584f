// Package loader turns tabular sources into shipment records.
//
// DirectLoader maps each row of the shipments source to one record.
// JoinLoader first builds a LocationIndex from the locations source, then
// resolves every row of the products source against it. Both loaders skip
// and report invalid rows, and hand valid records to an Inserter, usually the
// open transaction of a run.
package loader
