// Package branches removes local branches already merged into a target branch.
//
// Service resolves the target (an explicit name, else main, else master),
// lists merged branches through git, filters them into candidates, asks a
// BranchSelector which ones to delete, and deletes them with git's merge-safe
// delete. CommandBuilder exposes the pipeline as a Cobra command.
package branches
