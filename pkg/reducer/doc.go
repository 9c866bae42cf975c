/*
The reducer removes every subnet from a list which is already covered by a broader (or identical) subnet that was kept
before it. It never merges or synthesizes subnets, it only decides which of the given ones survive.

Large inputs are split into partitions which are reduced independently and in parallel. The concatenated partition
results are then reduced once more to get the final list.
*/
package reducer
