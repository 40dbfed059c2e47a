package github

// Exported aliases for testing internal functions from
// the github_test package.

// IdentityFromUserForTest exposes identityFromUser.
var IdentityFromUserForTest = identityFromUser

// BranchFromRepositoryForTest exposes
// branchFromRepository.
var BranchFromRepositoryForTest = branchFromRepository

// CanWriteFromRepositoryForTest exposes
// canWriteFromRepository.
var CanWriteFromRepositoryForTest = canWriteFromRepository
