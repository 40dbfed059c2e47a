package gitlab

// Exported aliases for testing internal functions from
// the gitlab_test package.

// IdentityFromUserForTest exposes identityFromUser.
var IdentityFromUserForTest = identityFromUser

// BranchFromProjectForTest exposes branchFromProject.
var BranchFromProjectForTest = branchFromProject

// CanWriteFromProjectForTest exposes canWriteFromProject.
var CanWriteFromProjectForTest = canWriteFromProject
