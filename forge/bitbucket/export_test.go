package bitbucket

// Exported aliases for testing internal types and
// functions from the bitbucket_test package.

// RepoMetadata is an alias for repoMetadata.
type RepoMetadata = repoMetadata

// MainBranch is an alias for mainBranch.
type MainBranch = mainBranch

// UserIdentity is an alias for userIdentity.
type UserIdentity = userIdentity

// UserLinks is an alias for userLinks.
type UserLinks = userLinks

// AvatarLink is an alias for avatarLink.
type AvatarLink = avatarLink

// IdentityFromUserForTest exposes identityFromUser.
var IdentityFromUserForTest = identityFromUser

// BranchFromMetadataForTest exposes branchFromMetadata.
var BranchFromMetadataForTest = branchFromMetadata
