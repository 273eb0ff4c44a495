// Package scan aggregates server-known assets for local directory trees.
//
// The Scanner walks a target directory, converts each folder's absolute
// path into the server's library-relative addressing via model.Library,
// asks the server which assets belong to each folder, and merges the
// answers into a deduplicated, discovery-ordered list of asset IDs.
//
// # Ordering
//
// The target folder is queried first, then every descendant directory
// in lexical walk order. When the same asset is reported by several
// folders, its first occurrence wins and later ones are dropped, so the
// output order is stable for a given tree.
//
// # Failure Behaviour
//
// One folder failing to answer does not abort the scan: the failure is
// surfaced through the FolderEvent callback and the folder contributes
// nothing. Only an uninspectable target or a cancelled context fails
// Collect itself.
//
// # Usage
//
//	scanner := scan.NewScanner(library, client, nil)
//	result, err := scanner.Collect(ctx, "/mnt/photos/2024/summer")
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d unique assets in %d folders\n",
//	    len(result.AssetIDs), len(result.Folders))
package scan
